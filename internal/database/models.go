package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileID 是 Profile 单例行的固定主键。
const ProfileID = "profile"

// 实验经历类型枚举（与前端下拉选项保持一致）。
const (
	ExperienceTypeWork           = "WORK"
	ExperienceTypeInternship     = "INTERNSHIP"
	ExperienceTypeApprenticeship = "APPRENTICESHIP"
	ExperienceTypeFreelance      = "FREELANCE"
	ExperienceTypeVolunteer      = "VOLUNTEER"
	ExperienceTypeFixedTerm      = "FIXED_TERM"
	ExperienceTypePermanent      = "PERMANENT"
)

// 审计日志动作与目标类型。
const (
	AuditActionCreate = "CREATE"

	AuditTargetUser = "USER"
)

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// User 表示后台账号信息。
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:32;not null;default:viewer" json:"role"`
	Image        string    `gorm:"size:512" json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error { ensureID(&u.ID); return nil }

// Profile 是站点主人信息的单例行，主键恒为 ProfileID。
type Profile struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	FullName  string         `gorm:"size:255;not null" json:"fullName"`
	Headline  string         `gorm:"size:255" json:"headline,omitempty"`
	Location  string         `gorm:"size:255" json:"location,omitempty"`
	Website   string         `gorm:"size:512" json:"website,omitempty"`
	Email     string         `gorm:"size:255" json:"email,omitempty"`
	Phone     string         `gorm:"size:64" json:"phone,omitempty"`
	JobTitle  string         `gorm:"size:255" json:"jobTitle,omitempty"`
	AboutMd   datatypes.JSON `gorm:"type:jsonb" json:"aboutMd,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Experience 表示一段职业经历。
type Experience struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Company    string     `gorm:"size:255;not null" json:"company"`
	CompanyURL string     `gorm:"size:512" json:"companyUrl,omitempty"`
	Role       string     `gorm:"size:255;not null" json:"role"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Location   string     `gorm:"size:255" json:"location,omitempty"`
	SummaryMd  string     `gorm:"type:text" json:"summaryMd,omitempty"`
	OrderIndex int        `gorm:"not null;default:0;index" json:"orderIndex"`
	Type       string     `gorm:"size:32;not null;default:WORK" json:"type"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (e *Experience) BeforeCreate(_ *gorm.DB) error { ensureID(&e.ID); return nil }

// Education 表示一段教育经历。
type Education struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	School     string     `gorm:"size:255;not null" json:"school"`
	Degree     string     `gorm:"size:255;not null" json:"degree"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	DetailsMd  string     `gorm:"type:text" json:"detailsMd,omitempty"`
	OrderIndex int        `gorm:"not null;default:0;index" json:"orderIndex"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (e *Education) BeforeCreate(_ *gorm.DB) error { ensureID(&e.ID); return nil }

// Project 表示一个作品集项目。
type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Picture     string    `gorm:"size:512" json:"picture,omitempty"`
	PreviewText string    `gorm:"size:512" json:"previewText,omitempty"`
	SummaryMd   string    `gorm:"type:text" json:"summaryMd,omitempty"`
	URL         string    `gorm:"size:512" json:"url,omitempty"`
	RepoURL     string    `gorm:"size:512" json:"repoUrl,omitempty"`
	OrderIndex  int       `gorm:"not null;default:0;index" json:"orderIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(_ *gorm.DB) error { ensureID(&p.ID); return nil }

// Skill 表示一项技能。
type Skill struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Level      string    `gorm:"size:64" json:"level,omitempty"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Skill) BeforeCreate(_ *gorm.DB) error { ensureID(&s.ID); return nil }

// Link 表示站点底部/侧栏的外部链接。
type Link struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Icon       string    `gorm:"size:512" json:"icon,omitempty"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (l *Link) BeforeCreate(_ *gorm.DB) error { ensureID(&l.ID); return nil }

// CvVersion 表示一份命名的简历版本：一组选中的经历/项目/技能/教育
// 加上一个以逗号拼接的分区显示顺序。
type CvVersion struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Slug         string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Theme        string    `gorm:"size:64;not null;default:modern" json:"theme"`
	SectionOrder string    `gorm:"size:255;not null" json:"sectionOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Experiences []CvVersionExperience `gorm:"foreignKey:CvID;constraint:OnDelete:CASCADE" json:"experiences,omitempty"`
	Projects    []CvVersionProject    `gorm:"foreignKey:CvID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Skills      []CvVersionSkill      `gorm:"foreignKey:CvID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	Educations  []CvVersionEducation  `gorm:"foreignKey:CvID;constraint:OnDelete:CASCADE" json:"educations,omitempty"`
}

func (v *CvVersion) BeforeCreate(_ *gorm.DB) error { ensureID(&v.ID); return nil }

// CvVersionExperience 绑定简历版本与一段职业经历，除外键外无额外负载。
type CvVersionExperience struct {
	CvID         string     `gorm:"primaryKey;size:36" json:"cvId"`
	ExperienceID string     `gorm:"primaryKey;size:36" json:"experienceId"`
	Experience   Experience `gorm:"constraint:OnDelete:CASCADE" json:"experience,omitempty"`
}

// CvVersionProject 绑定简历版本与一个项目。
type CvVersionProject struct {
	CvID      string  `gorm:"primaryKey;size:36" json:"cvId"`
	ProjectID string  `gorm:"primaryKey;size:36" json:"projectId"`
	Project   Project `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// CvVersionSkill 绑定简历版本与一项技能。
type CvVersionSkill struct {
	CvID    string `gorm:"primaryKey;size:36" json:"cvId"`
	SkillID string `gorm:"primaryKey;size:36" json:"skillId"`
	Skill   Skill  `gorm:"constraint:OnDelete:CASCADE" json:"skill,omitempty"`
}

// CvVersionEducation 绑定简历版本与一段教育经历。
type CvVersionEducation struct {
	CvID        string    `gorm:"primaryKey;size:36" json:"cvId"`
	EducationID string    `gorm:"primaryKey;size:36" json:"educationId"`
	Education   Education `gorm:"constraint:OnDelete:CASCADE" json:"education,omitempty"`
}

// AuditLog 是特权操作的只追加记录。
type AuditLog struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	Action     string         `gorm:"size:32;not null" json:"action"`
	TargetType string         `gorm:"size:32;not null" json:"targetType"`
	TargetID   string         `gorm:"size:36" json:"targetId"`
	AuthorID   *string        `gorm:"size:36" json:"authorId,omitempty"`
	Meta       datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error { ensureID(&a.ID); return nil }

// AllModels 返回 AutoMigrate 需要的模型列表（连接表置于其宿主之后）。
func AllModels() []any {
	return []any{
		&User{},
		&Profile{},
		&Experience{},
		&Education{},
		&Project{},
		&Skill{},
		&Link{},
		&CvVersion{},
		&CvVersionExperience{},
		&CvVersionProject{},
		&CvVersionSkill{},
		&CvVersionEducation{},
		&AuditLog{},
	}
}
