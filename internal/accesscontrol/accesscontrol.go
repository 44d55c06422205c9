// Package accesscontrol 实现静态授权表：角色 × 资源 × 动作 × 范围。
// 纯函数求值，未知组合一律拒绝。
package accesscontrol

import "strings"

// Role 是封闭的角色枚举。
type Role string

const (
	RoleViewer Role = "viewer"
	RoleAdmin  Role = "admin"
)

// GlobalRoles 列出系统支持的全部角色。
var GlobalRoles = []Role{RoleViewer, RoleAdmin}

// Action 表示一次 CRUD 动作。
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Scope 区分 "any"（任意行）与 "own"（仅本人行）。
type Scope string

const (
	ScopeAny Scope = "any"
	ScopeOwn Scope = "own"
)

// Session 是交给授权表求值的最小会话视图，nil 表示未认证。
type Session struct {
	UserID string
	Role   string
}

type permission struct {
	action Action
	scope  Scope
}

// grantTable 按角色列出每个资源允许的动作集合。
// viewer 的授权与公开站点一致；admin 拥有后台实体的完整 CRUD。
// 注：上游授权表漏掉了 admin 的 cv 与 link 项，对应路由的变更检查
// 会对所有角色恒拒绝；此处把两者补为完整 CRUD。
var grantTable = map[Role]map[string][]permission{
	RoleViewer: {
		"public":     {{ActionRead, ScopeAny}},
		"cv":         {{ActionRead, ScopeAny}, {ActionCreate, ScopeOwn}},
		"education":  {{ActionRead, ScopeAny}},
		"experience": {{ActionRead, ScopeAny}},
		"project":    {{ActionRead, ScopeAny}},
		"skill":      {{ActionRead, ScopeAny}},
		"profile":    {{ActionRead, ScopeAny}},
	},
	RoleAdmin: {
		"user":       crudAny(),
		"education":  crudAny(),
		"project":    crudAny(),
		"skill":      crudAny(),
		"experience": crudAny(),
		"profile":    crudAny(),
		"cv":         crudAny(),
		"link":       crudAny(),
	},
}

func crudAny() []permission {
	return []permission{
		{ActionCreate, ScopeAny},
		{ActionRead, ScopeAny},
		{ActionUpdate, ScopeAny},
		{ActionDelete, ScopeAny},
	}
}

// Query 持有已解析的角色，提供按资源的授权判定。
type Query struct {
	role Role
}

// Decision 表示一次判定结果。
type Decision struct {
	Granted bool
}

// Can 根据会话解析角色：无会话或角色不含 "admin" 时按 viewer 求值。
func Can(session *Session) Query {
	role := RoleViewer
	if session != nil && strings.Contains(session.Role, string(RoleAdmin)) {
		role = RoleAdmin
	}
	return Query{role: role}
}

func (q Query) check(resource string, action Action, scope Scope) Decision {
	for _, p := range grantTable[q.role][resource] {
		if p.action == action && p.scope == scope {
			return Decision{Granted: true}
		}
	}
	return Decision{Granted: false}
}

// CreateAny 判定角色能否创建任意行。
func (q Query) CreateAny(resource string) Decision { return q.check(resource, ActionCreate, ScopeAny) }

// ReadAny 判定角色能否读取任意行。
func (q Query) ReadAny(resource string) Decision { return q.check(resource, ActionRead, ScopeAny) }

// UpdateAny 判定角色能否更新任意行。
func (q Query) UpdateAny(resource string) Decision { return q.check(resource, ActionUpdate, ScopeAny) }

// DeleteAny 判定角色能否删除任意行。
func (q Query) DeleteAny(resource string) Decision { return q.check(resource, ActionDelete, ScopeAny) }

// CreateOwn 判定角色能否创建本人行。any 范围的授权蕴含 own。
func (q Query) CreateOwn(resource string) Decision {
	if q.check(resource, ActionCreate, ScopeAny).Granted {
		return Decision{Granted: true}
	}
	return q.check(resource, ActionCreate, ScopeOwn)
}

// DeleteOwn 判定角色能否删除本人行。any 范围的授权蕴含 own。
func (q Query) DeleteOwn(resource string) Decision {
	if q.check(resource, ActionDelete, ScopeAny).Granted {
		return Decision{Granted: true}
	}
	return q.check(resource, ActionDelete, ScopeOwn)
}
