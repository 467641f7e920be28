package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/xmlconv/internal/converter"
	"github.com/rezonia/xmlconv/internal/nfe"
	"github.com/rezonia/xmlconv/internal/validate"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	converter *converter.Converter
	extractor *nfe.Extractor
}

// NewServer creates a new API server
func NewServer(config *Config, conv *converter.Converter) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	if conv == nil {
		conv = converter.NewDefault()
	}

	s := &Server{
		config:    config,
		router:    router,
		converter: conv,
		extractor: nfe.NewExtractor(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/convert", s.handleConvert)
		v1.POST("/extract", s.handleExtract)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/info", s.handleInfo)
		v1.GET("/stats", s.handleStats)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleConvert(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	opts := queryOptions(c)

	result, err := s.converter.ConvertString(string(body), opts...)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	data, err := s.converter.Serialize(result, opts...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) handleExtract(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	result, err := s.converter.ConvertString(string(body))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	info, found := s.extractor.Extract(result)
	if !found {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "not an NFe document",
		})
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Document: info, Summary: nfe.Summarize(info)})
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	report := validate.NFeStructure(string(body))
	resp := ValidationResponse{NFeReport: report}
	if !report.Valid {
		resp.Errors = []string{report.Error}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	report := validate.Structure(string(body), nil)
	c.JSON(http.StatusOK, InfoResponse{StructureReport: report, Size: len(body)})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{
		Converter: s.converter.Stats(),
		Extracted: s.extractor.Extracted(),
	})
}

// Helper functions

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

// queryOptions maps request query parameters onto per-call conversion options.
func queryOptions(c *gin.Context) []converter.Option {
	var opts []converter.Option
	if v, ok := queryBool(c, "clean_namespaces"); ok {
		opts = append(opts, converter.WithCleanNamespaces(v))
	}
	if v, ok := queryBool(c, "attributes"); ok {
		opts = append(opts, converter.WithPreserveAttributes(v))
	}
	if v, ok := queryBool(c, "types"); ok {
		opts = append(opts, converter.WithTypeConversion(v))
	}
	if v, ok := queryBool(c, "ascii"); ok {
		opts = append(opts, converter.WithEscapeASCII(v))
	}
	if raw := c.Query("indent"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			opts = append(opts, converter.WithIndent(n))
		}
	}
	return opts
}

func queryBool(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
