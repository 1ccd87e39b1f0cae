package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/pkg/database"
)

const usage = `Usage: migrate [-config path] <command>

Commands:
  up         применить все миграции
  down       откатить последнюю миграцию
  force N    установить версию N и снять признак dirty
  version    показать текущую версию
`

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "путь к файлу конфигурации")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Миграции применимы только к database.driver=%s", config.DriverPostgres)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db, cfg.Database.MigrationsPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(m, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return report(m.Up(), "Миграции применены")
	case "down":
		return report(m.Steps(-1), "Последняя миграция откачена")
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		log.Printf("Устанавливаем версию миграций %d и снимаем признак dirty...", version)
		return report(m.Force(version), "Версия установлена")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("Миграции еще не применялись")
			return nil
		}
		if err != nil {
			return err
		}
		log.Printf("Версия: %d, dirty: %t", version, dirty)
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func report(err error, success string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("Изменений нет, база данных уже актуальна.")
		return nil
	}
	if err != nil {
		return err
	}
	log.Println(success)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
