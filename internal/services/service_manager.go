package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/audit"
	"github.com/SAP-F-2025/coaching-service/internal/dashboard"
	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/reports"
	"github.com/SAP-F-2025/coaching-service/internal/upload"
	"github.com/SAP-F-2025/coaching-service/internal/utils"
)

// ServiceManager owns the role dashboards and their collaborators and
// controls their lifecycle.
type ServiceManager interface {
	StudentDashboard() dashboard.StudentService
	AdvisorDashboard() dashboard.AdvisorService
	AdminDashboard() dashboard.AdminService
	CommitteeDashboard() dashboard.CommitteeService
	Upload() upload.Service
	Reports() reports.Service

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	Dashboards ServiceConfig
	Upload     ServiceConfig
	Reports    ServiceConfig

	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	Enabled         bool
	AuditingEnabled bool
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo   dataset.Repository
	sink   audit.Sink
	logger *slog.Logger
	config ServiceManagerConfig

	// Service instances
	studentService   dashboard.StudentService
	advisorService   dashboard.AdvisorService
	adminService     dashboard.AdminService
	committeeService dashboard.CommitteeService
	uploadService    upload.Service
	reportService    reports.Service

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo dataset.Repository, sink audit.Sink, logger *slog.Logger, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:   repo,
		sink:   sink,
		logger: logger,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(repo dataset.Repository, sink audit.Sink, logger *slog.Logger) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,

		Dashboards: ServiceConfig{Enabled: true, AuditingEnabled: true},
		Upload:     ServiceConfig{Enabled: true, AuditingEnabled: true},
		Reports:    ServiceConfig{Enabled: true, AuditingEnabled: true},

		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(repo, sink, logger, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.shutdown {
		return fmt.Errorf("service manager already shut down")
	}

	sm.logger.Info("Initializing service manager")

	adapted := utils.NewSlogLogger(sm.logger)
	sink := sm.sink
	if sink == nil {
		return fmt.Errorf("audit sink is required")
	}

	if sm.config.Dashboards.Enabled {
		sm.studentService = dashboard.NewStudentService(sm.repo, sm.logger)
		sm.advisorService = dashboard.NewAdvisorService(sm.repo, sm.logger)
		sm.adminService = dashboard.NewAdminService(sm.repo, sm.logger)
		sm.committeeService = dashboard.NewCommitteeService(sm.repo, sm.logger)
		sm.logger.Info("Dashboard services initialized")
	}

	if sm.config.Upload.Enabled {
		sm.uploadService = upload.NewService(sink, adapted)
		sm.logger.Info("Upload service initialized")
	}

	if sm.config.Reports.Enabled {
		sm.reportService = reports.NewService(sm.repo, sink, adapted)
		sm.logger.Info("Report service initialized")
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Shutdown marks the manager stopped; services hold no external resources.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")
	sm.shutdown = true
	sm.initialized = false
	return nil
}

// Service getters

func (sm *serviceManager) StudentDashboard() dashboard.StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.studentService == nil {
		panic("student dashboard service not initialized")
	}
	return sm.studentService
}

func (sm *serviceManager) AdvisorDashboard() dashboard.AdvisorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.advisorService == nil {
		panic("advisor dashboard service not initialized")
	}
	return sm.advisorService
}

func (sm *serviceManager) AdminDashboard() dashboard.AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.adminService == nil {
		panic("admin dashboard service not initialized")
	}
	return sm.adminService
}

func (sm *serviceManager) CommitteeDashboard() dashboard.CommitteeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.committeeService == nil {
		panic("committee dashboard service not initialized")
	}
	return sm.committeeService
}

func (sm *serviceManager) Upload() upload.Service {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.uploadService == nil {
		panic("upload service not enabled or not initialized")
	}
	return sm.uploadService
}

func (sm *serviceManager) Reports() reports.Service {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.reportService == nil {
		panic("report service not enabled or not initialized")
	}
	return sm.reportService
}
