package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/breakeven"
	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/catalog"
	"github.com/rgehrsitz/plan4you/internal/compare"
	"github.com/rgehrsitz/plan4you/internal/domain"
	"github.com/rgehrsitz/plan4you/internal/sequencing"
	"github.com/rgehrsitz/plan4you/internal/transform"
)

// Router holds the /api handlers.
type Router struct {
	Advisor *advisor.Advisor
	Catalog CatalogReader
	Logger  calculation.Logger
}

// Register mounts the routes on group.
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.GET("/test", r.handleTest)
	group.POST("/eligibility", r.handleEligibility)
	group.POST("/limit", r.handleLimit)
	group.POST("/compare", r.handleCompare)
	group.GET("/catalog", r.handleCatalogList)
	group.GET("/catalog/:state", r.handleCatalog)
}

type eligibilityResponse struct {
	RequestID string                    `json:"requestId"`
	Headline  string                    `json:"headline"`
	Report    *domain.EligibilityReport `json:"report"`
	Summaries []advisor.Summary         `json:"summaries"`
}

func (r *Router) handleTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "plan4you API is running"})
}

// bindProfile decodes and validates a household profile body, writing a 400
// response when it fails.
func bindProfile(c *gin.Context, profile *domain.HouseholdProfile) bool {
	if err := c.ShouldBindJSON(profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	*profile = profile.Normalized()
	if err := profile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (r *Router) handleEligibility(c *gin.Context) {
	strategy, err := sequencing.CreateStrategy(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var profile domain.HouseholdProfile
	if !bindProfile(c, &profile) {
		return
	}

	rec, err := r.Advisor.Recommend(c.Request.Context(), profile)
	if err != nil {
		r.Logger.Errorf("eligibility request %s failed: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rec.Report.Plans = strategy.Order(rec.Report.Plans)

	c.JSON(http.StatusOK, eligibilityResponse{
		RequestID: c.GetString("requestID"),
		Headline:  rec.Report.Eligibility.Headline(),
		Report:    rec.Report,
		Summaries: rec.Summaries,
	})
}

func (r *Router) handleLimit(c *gin.Context) {
	var profile domain.HouseholdProfile
	if !bindProfile(c, &profile) {
		return
	}
	result, err := breakeven.NewDefaultSolver(r.Advisor.Engine, r.Advisor.Ref).IncomeLimit(c.Request.Context(), profile)
	if err != nil {
		r.Logger.Errorf("limit request %s failed: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type compareRequest struct {
	Profile    domain.HouseholdProfile `json:"profile"`
	Templates  []string                `json:"templates"`
	Transforms []string                `json:"transforms"`
	Name       string                  `json:"name"`
}

func (r *Router) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	req.Profile = req.Profile.Normalized()
	if err := req.Profile.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := compare.CompareOptions{Templates: req.Templates}
	if len(req.Transforms) > 0 {
		transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(req.Transforms)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		name := req.Name
		if name == "" {
			name = "custom"
		}
		opts.Scenarios = []compare.Scenario{{Name: name, Transforms: transforms}}
	}

	compSet, err := compare.NewCompareEngine(r.Advisor.Engine, r.Advisor.Ref).Compare(c.Request.Context(), req.Profile, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := compare.NewComparisonDocument(compSet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (r *Router) handleCatalogList(c *gin.Context) {
	if r.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog store not configured"})
		return
	}
	list, err := r.Catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"catalogs": list})
}

func (r *Router) handleCatalog(c *gin.Context) {
	if r.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog store not configured"})
		return
	}
	dental, err := queryBool(c, "dental")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dental: " + err.Error()})
		return
	}
	assisted, err := queryBool(c, "assisted")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assisted: " + err.Error()})
		return
	}

	entry, err := r.Catalog.Find(c.Request.Context(), catalog.Key{State: c.Param("state"), WantsDental: dental, Assisted: assisted})
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func queryBool(c *gin.Context, name string) (bool, error) {
	v := c.Query(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
