package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"

	"github.com/sala-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/sala-hr/attendance-backend-go/internal/handler/http"
	"github.com/sala-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/sala-hr/attendance-backend-go/internal/repository/firestore"
	"github.com/sala-hr/attendance-backend-go/internal/service/approval"
	"github.com/sala-hr/attendance-backend-go/internal/service/records"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	}))

	tokens := tokenSource(cfg.Firestore)
	client := firestore.NewClient(cfg.Firestore, tokens, logger)

	attendanceRepo := firestore.NewAttendanceRepository(client, logger)
	leaveRepo := firestore.NewLeaveRepository(client, logger)
	overtimeRepo := firestore.NewOvertimeRepository(client, logger)
	swapRepo := firestore.NewSwapRepository(client, logger)
	correctionRepo := firestore.NewCorrectionRepository(client, logger)
	auditRepo := firestore.NewAuditRepository(client, logger)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	approvalService := approval.NewService(leaveRepo, overtimeRepo, swapRepo, correctionRepo, attendanceRepo, auditRepo, logger)
	recordsService := records.NewService(attendanceRepo, leaveRepo, overtimeRepo, swapRepo, correctionRepo, logger)

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceRepo),
		Leave:      appHTTP.NewLeaveHandler(leaveRepo, approvalService),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeRepo, approvalService),
		Swap:       appHTTP.NewSwapHandler(swapRepo, approvalService),
		Correction: appHTTP.NewCorrectionHandler(correctionRepo, approvalService),
		Records:    appHTTP.NewRecordsHandler(recordsService),
		Audit:      appHTTP.NewAuditHandler(auditRepo),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

// tokenSource picks the store credential: a static bearer token when one was
// configured, otherwise the refresh-token flow. oauth2 caches and renews the
// access token on its own.
func tokenSource(cfg config.FirestoreConfig) oauth2.TokenSource {
	if cfg.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	}

	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
	}
	return conf.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
