package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbansense/lst-insight/internal/analysis"
	"github.com/urbansense/lst-insight/internal/building"
	"github.com/urbansense/lst-insight/internal/community"
	"github.com/urbansense/lst-insight/internal/greenspace"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReady(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false, "reason": "no analysis data loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}

type questionRequest struct {
	Question string `json:"question" binding:"required"`
	Mode     string `json:"mode"`
}

func (s *Server) handleQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}
	mode, err := analysis.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer := s.asst.AnswerQuestion(c.Request.Context(), req.Question, s.stats, s.class, mode)
	c.JSON(http.StatusOK, gin.H{
		"answer":   answer,
		"mode":     string(mode),
		"location": s.location,
	})
}

func (s *Server) handleStatistics(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no analysis data loaded"})
		return
	}
	c.JSON(http.StatusOK, s.stats)
}

func (s *Server) handleClassification(c *gin.Context) {
	if s.class == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no analysis data loaded"})
		return
	}
	c.JSON(http.StatusOK, s.class)
}

func (s *Server) handleContext(c *gin.Context) {
	ctx := analysis.BuildContext(s.stats, s.class, s.location)
	if ctx == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no analysis data loaded"})
		return
	}
	c.JSON(http.StatusOK, ctx)
}

func (s *Server) handleInsights(c *gin.Context) {
	ctx := analysis.BuildContext(s.stats, s.class, s.location)
	if ctx == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no analysis data loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": analysis.InsightsSummary(ctx)})
}

func (s *Server) handleUsage(c *gin.Context) {
	c.JSON(http.StatusOK, s.asst.Usage())
}

func (s *Server) handleModelStatus(c *gin.Context) {
	if s.prober == nil {
		c.JSON(http.StatusOK, gin.H{"configured": false, "connected": false})
		return
	}
	if err := s.prober.Probe(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{"configured": true, "connected": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": true, "connected": true})
}

func (s *Server) handleGreenspaceImpact(c *gin.Context) {
	var scenario greenspace.Scenario
	if err := c.ShouldBindJSON(&scenario); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, greenspace.EstimateImpact(scenario))
}

func (s *Server) handleGreenspaceInventory(c *gin.Context) {
	spaces := greenspace.DefaultInventory()
	c.JSON(http.StatusOK, gin.H{
		"spaces":  spaces,
		"summary": greenspace.Summarize(spaces),
	})
}

type analyzePlanRequest struct {
	building.Plan
	IncludeAdvisory bool `json:"include_advisory"`
}

func (s *Server) handleAnalyzePlan(c *gin.Context) {
	var req analyzePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Buildings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan has no buildings"})
		return
	}

	result := building.AnalyzePlan(req.Plan, s.grid)
	resp := gin.H{"analysis": result}
	if req.IncludeAdvisory {
		resp["advisory"] = s.asst.AdvisePlan(c.Request.Context(),
			building.AdvisorySystemPrompt,
			building.BuildAdvisoryPrompt(req.Plan, result),
			building.FallbackAdvice(req.Plan, result))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreatePlan(c *gin.Context) {
	var np community.NewPlan
	if err := c.ShouldBindJSON(&np); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := s.store.CreatePlan(c.Request.Context(), np)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.metrics.PlansCreated.Inc()
	c.JSON(http.StatusCreated, plan)
}

func (s *Server) handleListPlans(c *gin.Context) {
	plans, err := s.store.ListPlans(c.Request.Context(), community.Filter{
		Search:   c.Query("search"),
		PlanType: c.Query("type"),
		SortBy:   c.Query("sort"),
	})
	if err != nil {
		s.logger.Error("list plans", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "count": len(plans)})
}

type voteRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (s *Server) handleCastVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction is required"})
		return
	}
	plan, err := s.store.CastVote(c.Request.Context(), c.Param("id"), req.Direction)
	if err != nil {
		if errors.Is(err, community.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.metrics.VotesCast.WithLabelValues(req.Direction).Inc()
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleVoteHistory(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.store.GetPlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, community.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		s.logger.Error("vote history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load plan"})
		return
	}
	votes, err := s.store.VoteHistory(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("vote history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load vote history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"votes": votes, "count": len(votes)})
}

func (s *Server) handleBoardSummary(c *gin.Context) {
	summary, err := s.store.Summary(c.Request.Context())
	if err != nil {
		s.logger.Error("board summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not summarize board"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
