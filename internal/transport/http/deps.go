package http

import (
	"github.com/go-projects-nosql/internal/application/deadline"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/go-projects-nosql/internal/infrastructure/google"
	"github.com/go-projects-nosql/internal/infrastructure/hfspace"
	jwtinfra "github.com/go-projects-nosql/internal/infrastructure/jwt"
	openaiinfra "github.com/go-projects-nosql/internal/infrastructure/openai"
	s3infra "github.com/go-projects-nosql/internal/infrastructure/s3"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds all infrastructure dependencies for the router. LLM may be nil
// when no API key is configured; Metrics may be nil to disable /metrics.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	ProjectRepo      *dynamo.ProjectRepo
	TaskRepo         *dynamo.TaskRepo
	DesignRepo       *dynamo.DesignRepo
	NotificationRepo *dynamo.NotificationRepo
	WireframeRepo    *dynamo.WireframeRepo
	S3Store          *s3infra.Store
	JWTProvider      *jwtinfra.Provider
	GoogleVerifier   *google.Verifier
	WireframeModel   *hfspace.Client
	LLM              *openaiinfra.Client
	Scheduler        *deadline.Scheduler
	Metrics          prometheus.Gatherer
}
