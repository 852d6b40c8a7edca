// Программа запускает Telegram-бота для приема регистраций и задач
// на площадке помощи с учебой.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutor_bot/internal/api"
	"tutor_bot/internal/bot"
	"tutor_bot/internal/config"
	"tutor_bot/internal/finalize"
	"tutor_bot/internal/logger"
	"tutor_bot/internal/metrics"
	"tutor_bot/internal/refdata"

	"github.com/joho/godotenv"
)

// Текст соглашения используется, если файл с политикой недоступен.
const defaultConsentText = `Для работы с площадкой нам необходимо ваше согласие ` +
	`на обработку персональных данных (имя, контакты Telegram, данные анкеты). ` +
	`Данные используются только для подбора исполнителей и заказчиков.`

func init() {
	// Загружаем переменные из .env файла
	if err := godotenv.Load(); err != nil {
		// Если файл .env не найден, используем переменные окружения системы
		log.Printf("Файл .env не найден, используем переменные окружения системы")
	}
}

// main является точкой входа в приложение:
// 1. Проверяет обязательные переменные окружения
// 2. Собирает конфигурацию (файл + окружение)
// 3. Настраивает логирование
// 4. Создает клиент хранилища и шлюз справочников
// 5. Создает и запускает Telegram бота
// 6. Ожидает сигнал завершения для graceful shutdown
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Проверяем наличие всех необходимых переменных окружения
	requiredEnvVars := []string{"TELEGRAM_TOKEN", "SUPABASE_URL", "SUPABASE_KEY"}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Fatalf("Отсутствует обязательная переменная окружения: %s", envVar)
		}
	}

	// Инициализация конфигурации приложения
	cfg := config.NewConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			log.Fatalf("Ошибка загрузки конфигурации: %v", err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Неполная конфигурация: %v", err)
	}

	// Настройка логирования
	logWriter, err := logger.GetWriter(cfg.Logging.File, cfg.Logging.MaxSize, cfg.Logging.MaxAge.Std())
	if err != nil {
		log.Fatalf("Ошибка создания писателя логов: %v", err)
	}
	log.SetOutput(logWriter)

	// Инициализируем метрики
	m := metrics.NewMetrics()

	// Клиент внешнего хранилища
	client := api.NewClient(
		cfg.API.Supabase.URL,
		cfg.API.Supabase.Key,
		cfg.API.Supabase.Bucket,
		cfg.API.Supabase.Timeout.Std(),
		m,
	)
	client.SetRetryPolicy(cfg.API.Supabase.RetryCount, cfg.API.Supabase.RetryWait.Std())

	// Шлюз справочников с кэшем; прогреваем кэш при старте
	ref := refdata.NewGateway(client, cfg.RefData.CacheTTL.Std())
	ref.Subjects()
	ref.TaskTypes()

	// Текст соглашения об обработке персональных данных
	consentText := defaultConsentText
	if data, err := os.ReadFile(cfg.Bot.ConsentFile); err != nil {
		log.Printf("Файл соглашения %s недоступен, используем встроенный текст: %v", cfg.Bot.ConsentFile, err)
	} else {
		consentText = string(data)
	}

	// Создание и запуск бота
	telegramBot, err := bot.NewBot(
		cfg.API.Telegram.Token,
		cfg.API.Telegram.Timeout.Std(),
		client,
		ref,
		finalize.New(client, m),
		m,
		consentText,
		cfg.Bot.MinNameLen,
		cfg.Bot.MaxExperience,
	)
	if err != nil {
		log.Fatalf("Ошибка создания бота: %v", err)
	}

	telegramBot.Start()
	log.Println("Бот запущен")

	// Периодический вывод метрик в лог
	statsTicker := time.NewTicker(cfg.Bot.StatsInterval.Std())
	go func() {
		defer statsTicker.Stop()
		for {
			select {
			case <-statsTicker.C:
				log.Printf("Статистика: %v", m.GetStats())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Ожидаем сигнал завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Получен сигнал завершения, останавливаем работу...")
	cancel()
	telegramBot.Stop()
}
