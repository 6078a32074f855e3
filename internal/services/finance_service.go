package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"budgetu/internal/amqp"
	"budgetu/internal/core"
	"budgetu/internal/dashboard"
	"budgetu/internal/narrative"
	"budgetu/internal/risk"
	"budgetu/internal/store"
)

// RiskAlertPublisher is satisfied by *amqp.Client.
type RiskAlertPublisher interface {
	PublishRiskAlert(ctx context.Context, msg *amqp.RiskAlertMessage) error
}

// FinanceService fetches a user's month and runs it through the dashboard,
// risk and narrative pipeline.
type FinanceService struct {
	store  store.Reader
	alerts RiskAlertPublisher
}

// NewFinanceService wires the service. alerts may be nil, in which case
// high-risk dashboards are not announced.
func NewFinanceService(reader store.Reader, alerts RiskAlertPublisher) *FinanceService {
	return &FinanceService{
		store:  reader,
		alerts: alerts,
	}
}

type monthData struct {
	profile  core.Profile
	expenses []core.Expense
	goals    []core.SavingsGoal
}

// fetch issues the three reads concurrently. Any failure fails the whole
// fetch; there is no partial result.
func (s *FinanceService) fetch(ctx context.Context, userID string, month core.Month) (monthData, error) {
	var data monthData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.store.GetProfile(gctx, userID)
		data.profile = p
		return err
	})
	g.Go(func() error {
		e, err := s.store.ListMonthExpenses(gctx, userID, month)
		data.expenses = e
		return err
	})
	g.Go(func() error {
		goals, err := s.store.ListSavingsGoals(gctx, userID)
		data.goals = goals
		return err
	})

	if err := g.Wait(); err != nil {
		return monthData{}, err
	}
	return data, nil
}

// Dashboard builds the month's dashboard payload.
func (s *FinanceService) Dashboard(ctx context.Context, userID string, month core.Month) (dashboard.Payload, error) {
	data, err := s.fetch(ctx, userID, month)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load dashboard data",
			"user_id", userID,
			"month", month.String(),
			"error", err)
		return dashboard.Payload{}, err
	}

	payload := dashboard.Build(data.profile, data.expenses, data.goals, month)

	slog.DebugContext(ctx, "Dashboard computed",
		"user_id", userID,
		"month", payload.Month,
		"expense_count", len(data.expenses),
		"risk_level", payload.Risk.Level,
		"risk_score", payload.Risk.Score)

	if payload.Risk.Level == risk.High {
		s.publishRiskAlert(ctx, userID, payload.Month, payload.Risk)
	}
	return payload, nil
}

// Insights phrases the month's aggregates as insight text.
func (s *FinanceService) Insights(ctx context.Context, userID string, month core.Month) (narrative.InsightsReport, error) {
	data, err := s.fetch(ctx, userID, month)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load insights data",
			"user_id", userID,
			"month", month.String(),
			"error", err)
		return narrative.InsightsReport{}, err
	}
	return narrative.BuildInsights(data.profile, data.expenses, data.goals), nil
}

// Chat answers a free-text question. userID is accepted for logging only.
func (s *FinanceService) Chat(ctx context.Context, userID, message string) narrative.ChatReply {
	slog.DebugContext(ctx, "Chat message received", "user_id", userID, "message_length", len(message))
	return narrative.Chat(message)
}

// publishRiskAlert never fails the request; the dashboard is already computed.
func (s *FinanceService) publishRiskAlert(ctx context.Context, userID, month string, a risk.Assessment) {
	if s.alerts == nil {
		return
	}

	msg := amqp.NewRiskAlertMessage(userID, month, string(a.Level), a.Score, a.Reasons)
	if err := s.alerts.PublishRiskAlert(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish risk alert",
			"user_id", userID,
			"month", month,
			"error", err)
	}
}
