package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedPermission struct {
	name       string
	module     string
	action     string
	areaScoped bool
}

var seedPermissions = []seedPermission{
	{"Ver usuarios", "usuarios", "ver", false},
	{"Editar usuarios", "usuarios", "editar", false},

	{"Ver clientes", "clientes", "ver", false},
	{"Crear clientes", "clientes", "crear", false},
	{"Editar clientes", "clientes", "editar", false},
	{"Eliminar clientes", "clientes", "eliminar", false},

	{"Ver proyectos", "proyectos", "ver", false},
	{"Crear proyectos", "proyectos", "crear", false},
	{"Editar proyectos", "proyectos", "editar", false},
	{"Eliminar proyectos", "proyectos", "eliminar", false},
	{"Completar etapa de area", "proyectos", "completar_area", true},

	{"Ver inventario", "inventario", "ver", false},
	{"Crear inventario", "inventario", "crear", false},
	{"Editar inventario", "inventario", "editar", false},
	{"Eliminar inventario", "inventario", "eliminar", false},
	{"Ajustar stock", "inventario", "ajustar_stock", false},

	{"Ver proveedores", "proveedores", "ver", false},
	{"Crear proveedores", "proveedores", "crear", false},
	{"Editar proveedores", "proveedores", "editar", false},
	{"Eliminar proveedores", "proveedores", "eliminar", false},

	{"Ver talleres", "talleres", "ver", false},
	{"Crear talleres", "talleres", "crear", false},
	{"Editar talleres", "talleres", "editar", false},
	{"Eliminar talleres", "talleres", "eliminar", false},
}

// rolePermissionNames maps role name to the permissions it is granted.
// Admin gets none on purpose: the evaluator bypasses catalog lookups for the
// admin role kind, so granting rows would only mask regressions there.
var rolePermissionNames = map[string][]string{
	"Supervisor": {
		"Ver usuarios",
		"Ver clientes", "Crear clientes", "Editar clientes",
		"Ver proyectos", "Crear proyectos", "Editar proyectos",
		"Ver inventario",
		"Ver proveedores", "Crear proveedores", "Editar proveedores",
		"Ver talleres", "Crear talleres", "Editar talleres",
	},
	"Operario": {
		"Ver proyectos",
		"Completar etapa de area",
	},
	"Depósito": {
		"Ver inventario", "Crear inventario", "Editar inventario",
		"Ajustar stock",
		"Ver proveedores",
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with roles, the permission catalog, areas and sample users for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_denials", "user_areas", "role_permissions", "stock_movements", "project_stages", "projects", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedRoles(db)
		seedCatalog(db)
		seedAreas(db)
		seedUsers(db)
	},
}

func seedRoles(db *gorm.DB) {
	roles := map[string]string{
		"Administrador": "admin",
		"Supervisor":    "supervisor",
		"Operario":      "operario",
		"Depósito":      "deposito",
	}
	for name, kind := range roles {
		err := db.Exec(`
			INSERT INTO roles (name, kind, created_at) VALUES (?, ?, now())
			ON CONFLICT (name) DO UPDATE SET kind = EXCLUDED.kind`, name, kind).Error
		if err != nil {
			log.Fatalf("failed to seed role %s: %v", name, err)
		}
	}
	fmt.Println("Seeded roles")
}

func seedCatalog(db *gorm.DB) {
	for _, p := range seedPermissions {
		err := db.Exec(`
			INSERT INTO permissions (name, module, action, area_scoped, created_at)
			VALUES (?, ?, ?, ?, now())
			ON CONFLICT (module, action) DO UPDATE SET name = EXCLUDED.name, area_scoped = EXCLUDED.area_scoped`,
			p.name, p.module, p.action, p.areaScoped).Error
		if err != nil {
			log.Fatalf("failed to seed permission %s: %v", p.name, err)
		}
	}

	for roleName, permNames := range rolePermissionNames {
		for _, permName := range permNames {
			err := db.Exec(`
				INSERT INTO role_permissions (role_id, permission_id, created_at)
				SELECT r.id, p.id, now() FROM roles r, permissions p
				WHERE r.name = ? AND p.name = ?
				ON CONFLICT (role_id, permission_id) DO NOTHING`, roleName, permName).Error
			if err != nil {
				log.Fatalf("failed to grant %s to %s: %v", permName, roleName, err)
			}
		}
	}
	fmt.Println("Seeded permission catalog")
}

func seedAreas(db *gorm.DB) {
	for _, name := range []string{"Corte", "Confección", "Calidad"} {
		err := db.Exec(`
			INSERT INTO areas (name, created_at) VALUES (?, now())
			ON CONFLICT (name) DO NOTHING`, name).Error
		if err != nil {
			log.Fatalf("failed to seed area %s: %v", name, err)
		}
	}
	fmt.Println("Seeded areas")
}

func seedUsers(db *gorm.DB) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	userRows := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@taller.test", "Ana Admin", "Administrador"},
		{"supervisor@taller.test", "Sofia Supervisor", "Supervisor"},
		{"operario@taller.test", "Oscar Operario", "Operario"},
		{"deposito@taller.test", "Diego Depósito", "Depósito"},
	}

	for _, u := range userRows {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.email).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("user %s already exists\n", u.email)
			continue
		}
		err := db.Exec(`
			INSERT INTO users (email, name, password_hash, role_id, is_active, created_at, updated_at)
			SELECT ?, ?, ?, r.id, true, now(), now() FROM roles r WHERE r.name = ?`,
			u.email, u.name, string(hash), u.role).Error
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		fmt.Println("Seeded user:", u.email)
	}

	// Sample operator scope: Oscar works in Corte.
	err := db.Exec(`
		INSERT INTO user_areas (user_id, area_id, created_at)
		SELECT u.id, a.id, now() FROM users u, areas a
		WHERE u.email = 'operario@taller.test' AND a.name = 'Corte'
		ON CONFLICT (user_id, area_id) DO NOTHING`).Error
	if err != nil {
		log.Fatalf("failed to seed operator area: %v", err)
	}
}
