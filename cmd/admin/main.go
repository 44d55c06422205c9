package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm/clause"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/database"
)

// 一次性引导命令：创建首个管理员账号并写入审计记录。
// 凭据优先读环境变量（SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD/SEED_ADMIN_NAME），
// 缺失时转为交互式输入。
func main() {
	var (
		dbHost  = flag.String("db-host", "", "数据库 Host（可选，默认读 DATABASE_HOST）")
		dbPort  = flag.Int("db-port", 0, "数据库 Port（可选，默认读 DATABASE_PORT）")
		dbName  = flag.String("db-name", "", "数据库名（可选，默认读 POSTGRES_DB）")
		dbUser  = flag.String("db-user", "", "数据库用户（可选，默认读 POSTGRES_USER）")
		dbPass  = flag.String("db-password", "", "数据库密码（可选，默认读 POSTGRES_PASSWORD）")
		sslMode = flag.String("db-sslmode", "", "数据库 SSLMODE（可选，默认读 DATABASE_SSLMODE）")
	)
	flag.Parse()

	email, password, name, err := collectAdminCredentials()
	if err != nil {
		log.Fatalf("collect admin credentials: %v", err)
	}

	dbCfg, err := loadDatabaseConfig(*dbHost, *dbPort, *dbName, *dbUser, *dbPass, *sslMode)
	if err != nil {
		log.Fatalf("load database config: %v", err)
	}

	db, err := database.InitDatabase(dbCfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := db.AutoMigrate(&database.User{}, &database.AuditLog{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// 幂等：邮箱已存在时保留原行，不覆盖既有凭据。
	user := database.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         "admin",
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&user).Error; err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	var seeded database.User
	if err := db.Where("email = ?", email).First(&seeded).Error; err != nil {
		log.Fatalf("load seeded user: %v", err)
	}

	if err := database.WriteAuditLog(context.Background(), db, database.AuditActionCreate, database.AuditTargetUser, seeded.ID, nil, map[string]any{
		"createdBy": "seed",
		"role":      "admin",
	}); err != nil {
		log.Fatalf("write audit log: %v", err)
	}

	fmt.Printf("已创建初始管理员账号：\n")
	fmt.Printf("邮箱: %s\n", seeded.Email)
	fmt.Printf("名称: %s\n", seeded.Name)
}

func collectAdminCredentials() (email, password, name string, err error) {
	email = strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password = os.Getenv("SEED_ADMIN_PASSWORD")
	name = strings.TrimSpace(os.Getenv("SEED_ADMIN_NAME"))

	if email != "" && password != "" && name != "" {
		return email, password, name, nil
	}

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) (string, error) {
		fmt.Print(label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	if email == "" {
		if email, err = prompt("管理员邮箱: "); err != nil {
			return "", "", "", err
		}
	}
	if password == "" {
		if password, err = prompt("管理员密码: "); err != nil {
			return "", "", "", err
		}
	}
	if name == "" {
		if name, err = prompt("管理员名称: "); err != nil {
			return "", "", "", err
		}
	}

	if email == "" || password == "" || name == "" {
		return "", "", "", errors.New("email, password and name are all required")
	}
	return email, password, name, nil
}

func loadDatabaseConfig(host string, port int, name, user, password, sslmode string) (config.DatabaseConfig, error) {
	if strings.TrimSpace(host) == "" {
		host = os.Getenv("DATABASE_HOST")
	}
	if port <= 0 {
		if env := strings.TrimSpace(os.Getenv("DATABASE_PORT")); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return config.DatabaseConfig{}, fmt.Errorf("parse DATABASE_PORT: %w", err)
			}
			port = p
		}
	}
	if strings.TrimSpace(name) == "" {
		name = os.Getenv("POSTGRES_DB")
	}
	if strings.TrimSpace(user) == "" {
		user = os.Getenv("POSTGRES_USER")
	}
	if strings.TrimSpace(password) == "" {
		password = os.Getenv("POSTGRES_PASSWORD")
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = os.Getenv("DATABASE_SSLMODE")
	}

	if strings.TrimSpace(host) == "" {
		host = "localhost"
	}
	if port <= 0 {
		port = 5432
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = "disable"
	}
	if strings.TrimSpace(name) == "" {
		return config.DatabaseConfig{}, errors.New("database name is required (POSTGRES_DB)")
	}
	if strings.TrimSpace(user) == "" {
		return config.DatabaseConfig{}, errors.New("database user is required (POSTGRES_USER)")
	}
	if strings.TrimSpace(password) == "" {
		return config.DatabaseConfig{}, errors.New("database password is required (POSTGRES_PASSWORD)")
	}

	return config.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     name,
		User:     user,
		Password: password,
		SSLMode:  sslmode,
	}, nil
}
