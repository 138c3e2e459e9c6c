package main

import (
	"context"
	"flag"
	"log"
	"time"

	"medical-inventory/internal/infrastructure"
	"medical-inventory/pkg/config"
	applogger "medical-inventory/pkg/logger"
	"medical-inventory/pkg/validation"
	"medical-inventory/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение реестра)         ")
	log.Println("======================================================")

	// --- Определяем флаги ---
	runUsers := flag.Bool("users", false, "Создать учётные записи администратора, техника и наблюдателя")
	runDemo := flag.Bool("demo", false, "Заполнить пустой реестр демонстрационным оборудованием")
	importPath := flag.String("import", "", "Путь к инвентарной ведомости .xlsx для загрузки")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -users -demo)")

	flag.Parse()

	if !*runUsers && !*runDemo && *importPath == "" && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -users")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("  go run ./seeders/cmd/seed -import ./inventario.xlsx")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	ctx := context.Background()
	log.Println("📦 Используется драйвер:", cfg.Gateway.Driver)
	infra, err := infrastructure.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("❌ Не удалось подготовить хранилище: %v", err)
	}
	defer infra.Close()

	seeder := seeders.New(infra.Store, infra.Cache, cfg, validation.New(), logger.Named("seeder"))

	log.Println("======================================================")

	if *runAll || *runUsers {
		log.Println("▶️  Создание пользователей...")
		n, err := seeder.SeedUsers(ctx)
		if err != nil {
			log.Fatalf("❌ Ошибка создания пользователей: %v", err)
		}
		log.Printf("✅ Создано пользователей: %d", n)
		log.Println("======================================================")
	}

	if *runAll || *runDemo {
		log.Println("▶️  Заполнение реестра оборудования...")
		n, err := seeder.SeedInventory(ctx)
		if err != nil {
			log.Fatalf("❌ Ошибка заполнения реестра: %v", err)
		}
		log.Printf("✅ Добавлено аппаратов: %d", n)
		log.Println("======================================================")
	}

	if *importPath != "" {
		log.Println("▶️  Загрузка ведомости", *importPath)
		res, err := seeder.ImportFile(ctx, *importPath)
		if err != nil {
			log.Fatalf("❌ Ошибка загрузки ведомости: %v", err)
		}
		log.Printf("✅ Создано: %d, обновлено: %d, строк с ошибками: %d", res.Creados, res.Actualizados, len(res.Errores))
		for _, rowErr := range res.Errores {
			log.Printf("   ⚠️  строка %d: %s", rowErr.Fila, rowErr.Mensaje)
		}
		log.Println("======================================================")
	}

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := seeder.Wait(waitCtx); err != nil {
		log.Println("⚠️  Не все обработчики событий успели завершиться:", err)
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
