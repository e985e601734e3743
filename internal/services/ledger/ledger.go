// Package services содержит бизнес-логику журнала расходов: добавление,
// поиск со сводкой по месяцам и удаление записей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/calendar"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/filter"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Сообщения об ошибках ввода.
const (
	MsgInvalidInput    = "Please enter a valid input!!"
	MsgInvalidAmount   = "Please enter a valid amount!!"
	MsgInvalidCategory = "Invalid Category!!"
	MsgInvalidYear     = "Invalid year!!"
	MsgInvalidMonth    = "Invalid month Name!!"
	MsgInvalidDay      = "Invalid day!!"
	MsgInvalidDate     = "Invalid date!!"
)

// ExpenseRepository определяет методы для работы с журналом в хранилище.
type ExpenseRepository interface {
	// CreateExpense добавляет запись и возвращает её ID.
	CreateExpense(ctx context.Context, e models.Expense) (int64, error)
	// SearchExpenses возвращает записи по фильтру в порядке ID.
	SearchExpenses(ctx context.Context, f *filter.Filter) ([]*models.Expense, error)
	// RemoveExpense удаляет запись и возвращает её; nil, если записи не было.
	RemoveExpense(ctx context.Context, id int64) (*models.Expense, error)
}

// Cache описывает методы для кэширования сводок.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Version возвращает версию ключа, которая растёт при каждой инвалидации.
	Version(ctx context.Context, key string) (int64, error)
	// SetIfVersion сохраняет значение, только если версия ключа не изменилась.
	SetIfVersion(ctx context.Context, key string, value any, expiration time.Duration, version int64) (bool, error)
	// Invalidate удаляет значение из кеша и увеличивает версию ключа.
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует события изменения журнала.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// NopPublisher отбрасывает события. Используется без брокера.
type NopPublisher struct{}

// Publish ничего не делает.
func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// LedgerService реализует операции над журналом расходов.
type LedgerService struct {
	repo       ExpenseRepository
	cache      Cache
	events     EventPublisher
	log        *slog.Logger
	validate   *validator.Validate
	summaryTTL time.Duration
}

// NewLedgerService создает новый экземпляр LedgerService.
func NewLedgerService(repo ExpenseRepository, cache Cache, events EventPublisher,
	log *slog.Logger, summaryTTL time.Duration) *LedgerService {
	return &LedgerService{
		repo:       repo,
		cache:      cache,
		events:     events,
		log:        log,
		validate:   NewValidator(),
		summaryTTL: summaryTTL,
	}
}

// NewValidator возвращает валидатор с тегами "category" и "month".
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return calendar.IsCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		return calendar.IsMonth(fl.Field().String())
	})
	return v
}

// SummaryKey — ключ кеша годовой сводки пользователя.
func SummaryKey(userID int64, year int) string {
	return fmt.Sprintf("summary:%d:%d", userID, year)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// Create проверяет форму и добавляет запись журнала от имени userID.
func (s *LedgerService) Create(ctx context.Context, userID int64, req models.ExpenseRequest) (int64, error) {
	const op = "services.ledger.Create"

	day, err := parseInt(req.Day)
	if err != nil {
		return 0, apperr.Validation(MsgInvalidInput)
	}
	year, err := parseInt(req.Year)
	if err != nil {
		return 0, apperr.Validation(MsgInvalidInput)
	}
	if err := s.validate.Var(req.Category, "category"); err != nil {
		return 0, apperr.Validation(MsgInvalidInput)
	}
	amount, err := parseInt(req.Amount)
	if err != nil {
		return 0, apperr.Validation(MsgInvalidInput)
	}
	if amount < 1 {
		return 0, apperr.Validation(MsgInvalidAmount)
	}
	if err := s.validate.Var(req.Month, "month"); err != nil {
		return 0, apperr.Validation(MsgInvalidInput)
	}

	e := models.Expense{
		UserID:      userID,
		Day:         int(day),
		Month:       req.Month,
		Year:        int(year),
		Category:    req.Category,
		Description: req.Description,
		Amount:      amount,
	}
	id, err := s.repo.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	e.ID = id
	metrics.ExpensesCreated.Inc()
	s.log.Info("expense inserted", slog.Int64("id", id), slog.Int64("user_id", userID))

	s.invalidateSummary(ctx, userID, e.Year)
	s.publish(ctx, models.EventExpenseCreated, e)
	return id, nil
}

// Search выполняет поиск по записям userID.
//
// Если задан только год, возвращается сводка по месяцам (ModeAggregate),
// иначе — список записей (ModeListing). В обоих режимах Total — общая сумма.
func (s *LedgerService) Search(ctx context.Context, userID int64, req models.SearchRequest) (*models.SearchResult, error) {
	const op = "services.ledger.Search"

	f := filter.New().Eq(filter.UserID, userID)

	if req.Category != "" {
		if err := s.validate.Var(req.Category, "category"); err != nil {
			return nil, apperr.Validation(MsgInvalidCategory)
		}
		f.Eq(filter.Category, req.Category)
	}

	var (
		year    int
		hasYear bool
	)
	if req.Year != "" {
		y, err := parseInt(req.Year)
		if err != nil {
			return nil, apperr.Validation(MsgInvalidYear)
		}
		year, hasYear = int(y), true
		f.Eq(filter.Year, year)
	}

	if req.Month != "" {
		if err := s.validate.Var(req.Month, "month"); err != nil {
			return nil, apperr.Validation(MsgInvalidMonth)
		}
		f.Eq(filter.Month, req.Month)
	}

	if req.Day != "" {
		d, err := parseInt(req.Day)
		if err != nil || d < 1 || d > 31 {
			return nil, apperr.Validation(MsgInvalidDay)
		}
		day := int(d)
		// Без года дата не проверяется.
		if req.Month != "" && hasYear {
			month, _ := calendar.MonthNumber(req.Month)
			if !calendar.ValidDate(year, month, day) {
				return nil, apperr.Validation(MsgInvalidDate)
			}
		}
		f.Eq(filter.Day, day)
	}

	if hasYear && req.Category == "" && req.Day == "" && req.Month == "" {
		metrics.Searches.WithLabelValues(models.ModeAggregate).Inc()
		return s.summary(ctx, userID, year, f)
	}

	metrics.Searches.WithLabelValues(models.ModeListing).Inc()
	rows, err := s.repo.SearchExpenses(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result := &models.SearchResult{Mode: models.ModeListing, Expenses: rows}
	for _, e := range rows {
		result.Total += e.Amount
	}
	return result, nil
}

// summary строит сводку за год: суммы по месяцам в порядке первого
// появления месяца в выборке.
func (s *LedgerService) summary(ctx context.Context, userID int64, year int, f *filter.Filter) (*models.SearchResult, error) {
	const op = "services.ledger.summary"
	key := SummaryKey(userID, year)

	var cached models.SearchResult
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read summary from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		metrics.SummaryCache.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	metrics.SummaryCache.WithLabelValues("miss").Inc()

	// Версия читается до запроса к журналу: запись, закоммиченная после
	// чтения, сменит версию, и устаревшая сводка не будет сохранена.
	version, verErr := s.cache.Version(ctx, key)
	if verErr != nil {
		s.log.Warn("failed to read summary version", slog.String("key", key), sl.Err(verErr))
	}

	rows, err := s.repo.SearchExpenses(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.SearchResult{Mode: models.ModeAggregate, Months: []models.MonthTotal{}}
	index := make(map[string]int)
	for _, e := range rows {
		i, ok := index[e.Month]
		if !ok {
			i = len(result.Months)
			index[e.Month] = i
			result.Months = append(result.Months, models.MonthTotal{Month: e.Month})
		}
		result.Months[i].Total += e.Amount
		result.Total += e.Amount
	}

	if verErr != nil {
		return result, nil
	}
	stored, err := s.cache.SetIfVersion(ctx, key, result, s.summaryTTL, version)
	switch {
	case err != nil:
		s.log.Warn("failed to cache summary", slog.String("key", key), sl.Err(err))
	case !stored:
		s.log.Debug("summary changed while computing, not cached", slog.String("key", key))
	}
	return result, nil
}

// Remove удаляет запись по ID. Владелец записи не проверяется.
// Возвращает число удалённых строк; отсутствие записи ошибкой не считается.
func (s *LedgerService) Remove(ctx context.Context, id int64) (int, error) {
	const op = "services.ledger.Remove"

	removed, err := s.repo.RemoveExpense(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if removed == nil {
		return 0, nil
	}
	metrics.ExpensesRemoved.Inc()
	s.log.Info("expense deleted", slog.Int64("id", id), slog.Int64("user_id", removed.UserID))

	s.invalidateSummary(ctx, removed.UserID, removed.Year)
	s.publish(ctx, models.EventExpenseDeleted, *removed)
	return 1, nil
}

func (s *LedgerService) invalidateSummary(ctx context.Context, userID int64, year int) {
	key := SummaryKey(userID, year)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate summary", slog.String("key", key), sl.Err(err))
	}
}

func (s *LedgerService) publish(ctx context.Context, eventType string, e models.Expense) {
	event := models.LedgerEvent{
		Type:      eventType,
		ExpenseID: e.ID,
		UserID:    e.UserID,
		Year:      e.Year,
		Month:     e.Month,
		Amount:    e.Amount,
	}
	if err := s.events.Publish(ctx, eventType, event); err != nil {
		s.log.Warn("failed to publish ledger event", slog.String("type", eventType), sl.Err(err))
	}
}
