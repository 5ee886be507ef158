package monitoring

import (
	"github.com/akeren/referrly/config/router"
	"github.com/akeren/referrly/internal/log"
	"gorm.io/gorm"
)

// Dependencies are the probes behind /health. Any of them may be nil.
type Dependencies struct {
	DB           *gorm.DB
	Logger       *log.Logger
	Cache        Pinger
	Store        Pinger
	StoreBackend string
}

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	deps Dependencies
}

func NewMonitoringControllerFactory(deps Dependencies) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{deps: deps}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.deps)
}
