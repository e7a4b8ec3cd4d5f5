package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"dansebakken_backend/internals/configs"
	fbcontroller "dansebakken_backend/internals/features/feedback/controller"
	fbmodel "dansebakken_backend/internals/features/feedback/model"
	notifyservice "dansebakken_backend/internals/features/notifications/service"
	vippscontroller "dansebakken_backend/internals/features/payments/vipps/controller"
	vippsservice "dansebakken_backend/internals/features/payments/vipps/service"
	regcontroller "dansebakken_backend/internals/features/registrations/controller"
	regmodel "dansebakken_backend/internals/features/registrations/model"
	"dansebakken_backend/internals/helpers/csvstore"
	"dansebakken_backend/internals/helpers/sheets"
	middlewares "dansebakken_backend/internals/middlewares"
	routes "dansebakken_backend/internals/route"
)

func main() {
	migrateCSV := flag.Bool("migrate-csv", false, "rewrite the local registrations CSV into the current column layout and exit")
	flag.Parse()

	configs.LoadEnv()

	store := csvstore.New(configs.GetEnv("DATA_DIR", "data"))

	if *migrateCSV {
		n, err := csvstore.MigrateLegacy(store.RegistrationsPath())
		if err != nil {
			log.Fatalf("❌ CSV migration failed: %v", err)
		}
		log.Printf("✅ CSV migration done, %d row(s) rewritten", n)
		return
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// ===== capabilities from the environment =====

	var persister *sheets.Client
	if cfg := configs.Sheets(); cfg.Configured() {
		client, err := sheets.NewClient(context.Background(), cfg)
		if err != nil {
			log.Printf("[ERROR] Sheets client unavailable, falling back to CSV only: %v", err)
		} else {
			persister = client
			reconcileHeaders(client)
		}
	}

	var notifier *notifyservice.Mailer
	if cfg := configs.Mail(); cfg.Configured() {
		notifier = notifyservice.NewMailer(cfg)
	}

	var payments *vippsservice.Client
	if cfg := configs.Vipps(); cfg.Configured() {
		payments = vippsservice.NewClient(vippsservice.ConfigFromEnv(cfg))
	}

	// interface fields stay nil unless the concrete client exists
	webhookCtl := regcontroller.NewWebhookController(nil, store, nil)
	feedbackCtl := fbcontroller.NewFeedbackController(nil, store)
	vippsCtl := vippscontroller.NewVippsController(nil)
	if persister != nil {
		webhookCtl.Sheets = persister
		feedbackCtl.Sheets = persister
	}
	if notifier != nil {
		webhookCtl.Notify = notifier
	}
	if payments != nil {
		vippsCtl.Client = payments
	}

	routes.SetupRoutes(app, routes.Deps{
		Webhook:  webhookCtl,
		Feedback: feedbackCtl,
		Vipps:    vippsCtl,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
}

// reconcileHeaders lines up row 1 of both tabs with the current layout.
// Rarely does anything; it exists for fresh sheets and manual tab edits.
func reconcileHeaders(client *sheets.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tabs := map[string][]string{
		regcontroller.RegistrationsTab: regmodel.SheetHeaders,
		fbcontroller.FeedbackTab:       fbmodel.SheetHeaders,
	}
	for tab, headers := range tabs {
		res, err := client.EnsureHeaders(ctx, tab, headers)
		if err != nil {
			log.Printf("[SHEETS] header check for %s failed: %v", tab, err)
			continue
		}
		if res.Updated {
			log.Printf("[SHEETS] headers of %s reconciled", tab)
		}
	}
}
