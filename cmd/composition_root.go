package cmd

import (
	"log/slog"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/llm"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/redispub"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	drafter    *llm.Drafter
	importer   *llm.Importer
	publisher  *redispub.Publisher
	tokens     *httpadapter.TokenIssuer
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	llmClient := llm.NewClient(config.LLMBaseURL, config.LLMAPIKey, config.LLMModel, config.LLMTimeout)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		drafter:    llm.NewDrafter(llmClient),
		importer:   llm.NewImporter(llmClient),
		publisher:  redispub.NewPublisher(redisClient, logger),
		tokens:     httpadapter.NewTokenIssuer([]byte(config.JWTSecret), config.JWTTTL),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAuthenticateUserCommandHandler() commands.AuthenticateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAuthenticateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.OrderProductUoWFactory = FuncOrderProductUoWFactory(func() commands.OrderProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.drafter, c.publisher, c.config.LLMTimeout)
}

func (c *CompositionRoot) CreateDraftNewOrderAlertCommandHandler() commands.DraftNewOrderAlertCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDraftNewOrderAlertCommandHandler(f, c.drafter, c.config.AdminEmail, c.config.LLMTimeout)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateImportProductsCommandHandler() commands.ImportProductsCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportProductsCommandHandler(f, c.importer, c.config.LLMTimeout)
}

func (c *CompositionRoot) CreateImportUsersCommandHandler() commands.ImportUsersCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportUsersCommandHandler(f, c.importer, c.config.LLMTimeout)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAgentOrdersQueryHandler() queries.GetAgentOrdersQueryHandler {
	return queries.NewGetAgentOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllProductsQueryHandler() queries.GetAllProductsQueryHandler {
	return queries.NewGetAllProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllUsersQueryHandler() queries.GetAllUsersQueryHandler {
	return queries.NewGetAllUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateAuthenticateUserCommandHandler(),
		c.CreateSubmitOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateDraftNewOrderAlertCommandHandler(),
		c.CreateCreateProductCommandHandler(),
		c.CreateCreateUserCommandHandler(),
		c.CreateImportProductsCommandHandler(),
		c.CreateImportUsersCommandHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateGetAgentOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllProductsQueryHandler(),
		c.CreateGetAllUsersQueryHandler(),
		c.tokens,
		c.logger,
	)
}

func (c *CompositionRoot) TokenIssuer() *httpadapter.TokenIssuer {
	return c.tokens
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return jobs.NewJobManager(f, c.config.StaleOrderThreshold, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderProductUoWFactory func() commands.OrderProductUoW

func (f FuncOrderProductUoWFactory) Create() commands.OrderProductUoW {
	return f()
}
