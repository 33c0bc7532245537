package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"srebrnasad/internal/delivery"
	"srebrnasad/internal/domain"
	"srebrnasad/internal/pricing"
	orderrepo "srebrnasad/internal/repository/order"
	"srebrnasad/internal/service/catalog"
	contactsvc "srebrnasad/internal/service/contact"
	ordersvc "srebrnasad/internal/service/order"
)

type catalogService interface {
	List(ctx context.Context) ([]domain.Apple, error)
	Get(ctx context.Context, id string) (*domain.Apple, error)
	Create(ctx context.Context, in catalog.CreateInput) (*domain.Apple, error)
	Update(ctx context.Context, id string, in catalog.UpdateInput) (*domain.Apple, error)
	Delete(ctx context.Context, id string) error
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Quote(ctx context.Context, in ordersvc.QuoteInput) (pricing.Quote, error)
	ValidateDelivery(ctx context.Context, totalQuantityKg int, lat, lon float64) (domain.Eligibility, error)
}

type contactService interface {
	Submit(ctx context.Context, in contactsvc.SubmitInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

type deliveryChecker interface {
	Check(ctx context.Context, address string, totalQuantityKg int) domain.Eligibility
}

// Deps carries the services the routes dispatch to.
type Deps struct {
	Catalog  catalogService
	Orders   orderService
	Contact  contactService
	Checker  deliveryChecker
	Sessions *delivery.Registry
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	if err := registerValidations(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/apples", listApplesHandler(deps.Catalog))
	router.GET("/apples/:id", getAppleHandler(deps.Catalog))
	router.POST("/apples", createAppleHandler(deps.Catalog))
	router.PUT("/apples/:id", updateAppleHandler(deps.Catalog))
	router.DELETE("/apples/:id", deleteAppleHandler(deps.Catalog))

	router.POST("/orders", createOrderHandler(deps.Orders))
	router.GET("/orders", listOrdersHandler(deps.Orders))
	router.GET("/orders/:id", getOrderHandler(deps.Orders))
	router.PUT("/orders/:id/status", updateOrderStatusHandler(deps.Orders))
	router.POST("/orders/quote", quoteHandler(deps.Orders))

	router.POST("/delivery/check", deliveryCheckHandler(deps.Checker, deps.Sessions))
	router.POST("/delivery/validate", deliveryValidateHandler(deps.Orders))

	router.POST("/contact", submitContactHandler(deps.Contact))
	router.GET("/contact", listContactHandler(deps.Contact))

	return router, nil
}

// registerValidations adds the order form rules to gin's shared validator.
func registerValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("quantitystep", func(fl validator.FieldLevel) bool {
		kg := int(fl.Field().Int())
		return kg >= domain.MinLineQuantityKg && (kg-domain.MinLineQuantityKg)%domain.QuantityStepKg == 0
	}); err != nil {
		return err
	}
	v.RegisterStructValidation(createOrderStructValidation, createOrderRequest{})
	return nil
}
