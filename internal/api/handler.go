package api

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/terraincognita07/samaan/internal/db"
	"github.com/terraincognita07/samaan/internal/services"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	logger       *zap.Logger
	loginLimiter *attemptLimiter
	now          func() time.Time

	repositories   *db.Repositories
	authService    *services.AuthService
	calorieService *services.CalorieService
	goalService    *services.GoalService
	stockService   *services.StockService
	exportService  *services.ExportService
	digestService  *services.DigestService
}

// HandlerOptions carries the optional collaborators of NewHandler.
type HandlerOptions struct {
	CookieSecure bool
	Quotes       services.QuoteProvider
	Logger       *zap.Logger
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: options.CookieSecure,
		logger:       logger,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}
	return handler.withDependencies(database, options.Quotes), nil
}

func (handler *Handler) withDependencies(database *gorm.DB, quotes services.QuoteProvider) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.calorieService = services.NewCalorieService(handler.repositories.Calories, handler.repositories.Goals)
	handler.goalService = services.NewGoalService(handler.repositories.Goals)
	handler.stockService = services.NewStockService(handler.repositories.Stocks, quotes)
	handler.exportService = services.NewExportService(handler.calorieService)
	handler.digestService = services.NewDigestService(handler.calorieService)
	return handler
}

// today is the current calendar day in the configured location.
func (handler *Handler) today() time.Time {
	return handler.now().In(handler.location)
}
