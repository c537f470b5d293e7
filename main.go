package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maorhav/concierge/internal/claude"
	"github.com/maorhav/concierge/internal/config"
	"github.com/maorhav/concierge/internal/email"
	"github.com/maorhav/concierge/internal/gcal"
	"github.com/maorhav/concierge/internal/gtasks"
	"github.com/maorhav/concierge/internal/processor"
	"github.com/maorhav/concierge/internal/server"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		fatal("configuration", err)
	}

	generator := claude.NewClient(cfg.AnthropicAPIKey, cfg.ClaudeModels, cfg.ClaudeTemperature)

	gcalClient := initCalendar(cfg)
	tasksClient := initTasks(gcalClient)
	sender := initEmailSender(cfg, gcalClient)

	procCfg := processor.Config{
		Generator:  generator,
		CalendarID: cfg.CalendarID,
	}
	if gcalClient != nil && gcalClient.IsAuthenticated() {
		procCfg.Calendar = gcalClient
	}
	if tasksClient != nil && tasksClient.IsAuthenticated() {
		procCfg.Tasks = tasksClient
	}
	if sender != nil {
		procCfg.Email = sender
	}
	proc := processor.New(procCfg)

	srv := server.New(server.Config{
		Processor:  proc,
		GCalClient: gcalClient,
		Port:       cfg.HTTPPort,
	})
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv)
}

func initCalendar(cfg *config.Config) *gcal.Client {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Warning: Google Calendar unavailable: %v\n", err)
		return nil
	}
	if client.IsAuthenticated() {
		fmt.Println("Google Calendar client initialized")
	} else {
		fmt.Println("Google Calendar client created but not authenticated - connect via /api/gcal/connect")
	}
	return client
}

func initTasks(gcalClient *gcal.Client) *gtasks.Client {
	if gcalClient == nil || !gcalClient.IsAuthenticated() {
		return nil
	}

	client, err := gtasks.NewClient(gcalClient.GetOAuthConfig(), gcalClient.GetToken())
	if err != nil {
		fmt.Printf("Warning: Failed to create Tasks client: %v\n", err)
		return nil
	}

	fmt.Println("Google Tasks client initialized")
	return client
}

func initEmailSender(cfg *config.Config, gcalClient *gcal.Client) email.Sender {
	if gcalClient != nil && gcalClient.IsAuthenticated() {
		sender, err := email.NewGmailSender(context.Background(), gcalClient.GetOAuthConfig(), gcalClient.GetToken(), cfg.SenderName)
		if err != nil {
			fmt.Printf("Warning: Failed to create Gmail sender: %v\n", err)
		} else if sender.IsConfigured() {
			fmt.Println("Email sender configured (Gmail)")
			return sender
		}
	}

	if sender := email.NewResendSender(cfg.ResendAPIKey, cfg.ResendFrom, cfg.SenderName); sender != nil && sender.IsConfigured() {
		fmt.Println("Email sender configured (Resend)")
		return sender
	}

	fmt.Println("Warning: no email sender configured, email actions will fail at dispatch")
	return nil
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.Shutdown(ctx)
}
