package router

import (
	"github.com/oksasatya/go-ddd-ecommerce/config"
	"github.com/oksasatya/go-ddd-ecommerce/internal/application"
	"github.com/oksasatya/go-ddd-ecommerce/internal/container"
	repo "github.com/oksasatya/go-ddd-ecommerce/internal/domain/repository"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/mongodb"
	"github.com/oksasatya/go-ddd-ecommerce/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-ddd-ecommerce/internal/interface/http"
	"github.com/oksasatya/go-ddd-ecommerce/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-ecommerce/internal/router/modules"
)

type Repositories struct {
	Users    repo.UserRepository
	Products repo.ProductRepository
}

// BuildRepositories picks the storage driver from config. The mongo driver
// needs container.SetMongo to have been called; otherwise memory is used.
func BuildRepositories() Repositories {
	db := container.GetMongo()
	if container.GetConfig().StorageDriver == config.StorageMongo && db != nil {
		return Repositories{
			Users:    mongodb.NewUserRepository(db),
			Products: mongodb.NewProductRepository(db),
		}
	}
	return Repositories{
		Users:    memory.NewUserRepository(),
		Products: memory.NewProductRepository(),
	}
}

// optional backends are only assigned when present so the interfaces stay nil otherwise
func eventPublisher() application.EventPublisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}

func productSearcher() application.ProductSearcher {
	if es := container.GetES(); es != nil {
		cfg := container.GetConfig()
		return search.NewIndex(es, cfg.ESProductsIndex, cfg.ESUsersIndex)
	}
	return nil
}

func rateLimits() modules.RateLimits {
	cfg := container.GetConfig()
	rl := modules.RateLimits{
		Reads:  cfg.RateLimitReads,
		Writes: cfg.RateLimitWrites,
		Window: cfg.RateLimitWindow,
	}
	if cfg.RateLimitEnabled {
		rl.Redis = container.GetRedis()
	}
	if cfg.RateLimitBypassPrivate {
		rl.Allow = middleware.AllowPrivateIP()
	}
	return rl
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	repos := BuildRepositories()
	logger := container.GetLogger()
	pub := eventPublisher()
	limits := rateLimits()

	userSvc := application.NewUserService(repos.Users, pub, logger)
	productSvc := application.NewProductService(repos.Products, pub, productSearcher(), logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), limits))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), limits))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limits))
	}
}
