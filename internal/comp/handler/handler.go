// Package handler wires the compensation HTTP endpoints to the domain
// services. Handlers stay thin: parse, delegate, translate.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"payscope/internal/comp/models"
	"payscope/internal/comp/service/catalog"
	"payscope/internal/comp/service/query"
	dErrors "payscope/pkg/domain-errors"
	"payscope/pkg/platform/httputil"
)

// CatalogService resolves and creates the base entities.
type CatalogService interface {
	CreateCompany(ctx context.Context, params catalog.CreateCompanyParams) (*models.Company, error)
	CreateRole(ctx context.Context, params catalog.CreateRoleParams) (*models.Role, error)
	CreateLocation(ctx context.Context, params catalog.CreateLocationParams) (*models.Location, error)
	EnsureCompany(ctx context.Context, name string) (*models.Company, error)
	EnsureRole(ctx context.Context, title string) (*models.Role, error)
	EnsureLocation(ctx context.Context, city, state string) (*models.Location, error)
	FindCompanyByName(ctx context.Context, name string) (*models.Company, error)
	FindLocationByCity(ctx context.Context, city string) (*models.Location, error)
}

// RecordService owns the record write path.
type RecordService interface {
	Create(ctx context.Context, record *models.CompensationRecord) (*models.CompensationRecord, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// QueryService serves filtered, paginated record searches.
type QueryService interface {
	Search(ctx context.Context, filter models.Filter, page models.Page) (*query.Result, error)
	ByCompany(ctx context.Context, company string, page models.Page) (*query.Result, error)
	ByCity(ctx context.Context, city string, page models.Page) (*query.Result, error)
}

// StatsService serves aggregations.
type StatsService interface {
	Aggregate(ctx context.Context, filter models.Filter) (*models.SummaryStats, error)
	MeanByCity(ctx context.Context, city string) (float64, int, error)
}

// GeneratorService produces synthetic records.
type GeneratorService interface {
	Generate(ctx context.Context, count int) (int, error)
}

// Handler wires compensation endpoints to their services.
type Handler struct {
	catalog   CatalogService
	records   RecordService
	query     QueryService
	stats     StatsService
	generator GeneratorService
	logger    *slog.Logger
}

// New constructs the handler with its dependencies.
func New(
	catalog CatalogService,
	records RecordService,
	query QueryService,
	stats StatsService,
	generator GeneratorService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		records:   records,
		query:     query,
		stats:     stats,
		generator: generator,
		logger:    logger,
	}
}

// Register mounts the compensation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/search/salaries", h.HandleSearch)
	r.Get("/api/salaries/by-company/{name}", h.HandleByCompany)
	r.Get("/api/salaries/by-location/{city}", h.HandleByLocation)
	r.Get("/api/stats/salary-range", h.HandleStats)
	r.Post("/api/salaries/submit", h.HandleSubmit)
	r.Post("/api/companies/add", h.HandleCreateCompany)
	r.Post("/api/roles/add", h.HandleCreateRole)
	r.Post("/api/locations/add", h.HandleCreateLocation)
	r.Post("/api/admin/generate", h.HandleGenerate)
	r.Delete("/api/admin/salaries", h.HandleDeleteAll)
}

// HandleSearch handles GET /api/search/salaries.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.query.Search(ctx, filter, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "record search failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromResult(res))
}

// HandleByCompany handles GET /api/salaries/by-company/{name}. Unknown
// companies are a 404, not an empty page.
func (h *Handler) HandleByCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	company, err := h.catalog.FindCompanyByName(ctx, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.query.ByCompany(ctx, company.Name, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "company listing failed", "company", company.Name, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromResult(res))
}

// HandleByLocation handles GET /api/salaries/by-location/{city}: the city's
// records plus its average total compensation.
func (h *Handler) HandleByLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	city := chi.URLParam(r, "city")

	loc, err := h.catalog.FindLocationByCity(ctx, city)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.query.ByCity(ctx, loc.City, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "location listing failed", "city", loc.City, "error", err)
		httputil.WriteError(w, err)
		return
	}

	resp := LocationSalariesResponse{
		SearchResponse: fromResult(res),
		City:           loc.City,
	}
	if res.Total > 0 {
		mean, count, err := h.stats.MeanByCity(ctx, loc.City)
		if err != nil {
			h.logger.ErrorContext(ctx, "location mean failed", "city", loc.City, "error", err)
			httputil.WriteError(w, err)
			return
		}
		resp.AverageTotal = mean
		resp.MatchingRecords = count
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleStats handles GET /api/stats/salary-range.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	stats, err := h.stats.Aggregate(ctx, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// HandleSubmit handles POST /api/salaries/submit. Referenced entities are
// resolved by name and created on first observation.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[SubmitRecordRequest](w, r, h.logger)
	if !ok {
		return
	}

	company, err := h.catalog.EnsureCompany(ctx, req.CompanyName)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	role, err := h.catalog.EnsureRole(ctx, req.RoleTitle)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	loc, err := h.catalog.EnsureLocation(ctx, req.City, req.State)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record := &models.CompensationRecord{
		CompanyID:         company.ID,
		RoleID:            role.ID,
		LocationID:        loc.ID,
		BaseSalary:        req.BaseSalary,
		Bonus:             req.Bonus,
		StockOptions:      req.StockOptions,
		TotalCompensation: *req.TotalCompensation,
		YearsOfExperience: req.YearsOfExperience,
		YearsAtCompany:    req.YearsAtCompany,
		EmploymentType:    req.EmploymentType,
		IsRemote:          req.IsRemote,
		Currency:          req.Currency,
		Source:            "user_submission",
	}
	created, err := h.records.Create(ctx, record)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, SubmitRecordResponse{Record: created})
}

// HandleCreateCompany handles POST /api/companies/add.
func (h *Handler) HandleCreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[CreateCompanyRequest](w, r, h.logger)
	if !ok {
		return
	}
	company, err := h.catalog.CreateCompany(ctx, catalog.CreateCompanyParams{
		Name:         req.Name,
		Industry:     req.Industry,
		Size:         req.Size,
		Headquarters: req.Headquarters,
		Website:      req.Website,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, company)
}

// HandleCreateRole handles POST /api/roles/add.
func (h *Handler) HandleCreateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[CreateRoleRequest](w, r, h.logger)
	if !ok {
		return
	}
	role, err := h.catalog.CreateRole(ctx, catalog.CreateRoleParams{
		Title:    req.Title,
		Category: req.Category,
		Level:    req.ParsedLevel(),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, role)
}

// HandleCreateLocation handles POST /api/locations/add.
func (h *Handler) HandleCreateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[CreateLocationRequest](w, r, h.logger)
	if !ok {
		return
	}
	loc, err := h.catalog.CreateLocation(ctx, catalog.CreateLocationParams{
		City:              req.City,
		State:             req.State,
		Country:           req.Country,
		CostOfLivingIndex: req.CostOfLivingIndex,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, loc)
}

// HandleGenerate handles POST /api/admin/generate.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger)
	if !ok {
		return
	}
	generated, err := h.generator.Generate(ctx, req.Count)
	if err != nil {
		h.logger.ErrorContext(ctx, "generation failed", "count", req.Count, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, GenerateResponse{Generated: generated})
}

// HandleDeleteAll handles DELETE /api/admin/salaries.
func (h *Handler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deleted, err := h.records.DeleteAll(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// parsePage reads limit and offset query parameters, applying the documented
// defaults when absent. Unparseable or out-of-range values are an invalid
// query, never clamped.
func parsePage(r *http.Request) (models.Page, error) {
	limit := models.DefaultLimit
	offset := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, dErrors.New(dErrors.CodeInvalidQuery, "limit must be an integer")
		}
		limit = n
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return models.Page{}, dErrors.New(dErrors.CodeInvalidQuery, "offset must be an integer")
		}
		offset = n
	}
	return models.NewPage(limit, offset)
}

// parseFilter reads the optional search predicates from query parameters.
func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	filter := models.Filter{
		Company:        strings.TrimSpace(q.Get("company")),
		City:           strings.TrimSpace(q.Get("city")),
		Role:           strings.TrimSpace(q.Get("role")),
		EmploymentType: strings.TrimSpace(q.Get("employment_type")),
	}

	var err error
	if filter.MinTotalComp, err = parseFloatParam(q.Get("min_total_compensation"), "min_total_compensation"); err != nil {
		return models.Filter{}, err
	}
	if filter.MaxTotalComp, err = parseFloatParam(q.Get("max_total_compensation"), "max_total_compensation"); err != nil {
		return models.Filter{}, err
	}
	if filter.MinExperience, err = parseIntParam(q.Get("min_experience"), "min_experience"); err != nil {
		return models.Filter{}, err
	}
	if filter.MaxExperience, err = parseIntParam(q.Get("max_experience"), "max_experience"); err != nil {
		return models.Filter{}, err
	}

	if raw := q.Get("is_remote"); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			return models.Filter{}, dErrors.New(dErrors.CodeInvalidQuery, "is_remote must be a boolean")
		}
		filter.IsRemote = &remote
	}
	return filter, nil
}

func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidQuery, name+" must be a number")
	}
	return &v, nil
}

func parseIntParam(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidQuery, name+" must be an integer")
	}
	return &v, nil
}
