package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rawblock/esopforge/internal/aig"
	"github.com/rawblock/esopforge/internal/aigfile"
	"github.com/rawblock/esopforge/internal/bddmgr"
	"github.com/rawblock/esopforge/internal/exorcism"
	"github.com/rawblock/esopforge/internal/jobs"
	"github.com/rawblock/esopforge/internal/metrics"
	"github.com/rawblock/esopforge/internal/psdkro"
	"github.com/rawblock/esopforge/internal/xforms"
	"github.com/rawblock/esopforge/pkg/cube"
)

// POST /api/v1/jobs
// Submits a synthesis job against an inline textual AIG circuit: the
// AIG engine collapses it directly, the PSDKRO engine lifts it
// through a fresh BDD manager and extracts a PSDKRO cover. Either may
// be followed by an EXORCISM minimization pass.
func (h *APIHandler) handleSubmitJob(c *gin.Context) {
	var req struct {
		Engine   string `json:"engine" binding:"required"`
		Source   string `json:"source" binding:"required"`
		Exorcism bool   `json:"exorcism"`
		Baseline string `json:"baseline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var engine jobs.Engine
	switch strings.ToLower(req.Engine) {
	case "aig":
		engine = jobs.AIGEngine
	case "psdkro":
		engine = jobs.PSDKROEngine
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "engine must be \"aig\" or \"psdkro\""})
		return
	}

	g, err := aigfile.Read(strings.NewReader(req.Source))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse AIG source", "details": err.Error()})
		return
	}

	job := h.jobMgr.Submit(engine, g.NInputs, len(g.Outputs), req.Exorcism)
	h.jobMgr.MarkRunning(job.ID)
	started := time.Now()

	var perOutput [][]cube.Cube
	switch engine {
	case jobs.AIGEngine:
		perOutput, err = (aig.Collapser{}).Run(g)
	case jobs.PSDKROEngine:
		mgr := bddmgr.New()
		liftedRoots, liftErr := xforms.Lift(mgr, g)
		if liftErr != nil {
			err = liftErr
		} else {
			perOutput = psdkro.ExtractAll(mgr, liftedRoots, g.NInputs)
		}
	}
	if err != nil {
		h.jobMgr.Fail(job.ID, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Synthesis failed", "details": err.Error()})
		return
	}

	results := make([]jobs.OutputResult, len(perOutput))
	cubeCounts := make([]int, len(perOutput))
	for i, cubes := range perOutput {
		before := len(cubes)
		after := before
		if req.Exorcism {
			cubes = exorcism.Minimize(cubes, g.NInputs)
			after = len(cubes)
		}
		results[i] = jobs.OutputResult{CubesBefore: before, CubesAfter: after}
		cubeCounts[i] = after
	}
	h.jobMgr.Complete(job.ID, results, time.Since(started))

	if h.dbStore != nil {
		if saved := h.jobMgr.Get(job.ID); saved != nil {
			_ = h.dbStore.SaveJob(c.Request.Context(), saved)
		}
	}

	var regressions interface{}
	if req.Baseline != "" && h.watchlist != nil {
		regressions = h.watchlist.CheckRun(req.Baseline, cubeCounts, 0.10)
	}

	if h.wsHub != nil {
		h.wsHub.Broadcast([]byte(`{"type":"job_complete","jobId":"` + job.ID + `"}`))
	}

	c.JSON(http.StatusOK, gin.H{
		"job":         h.jobMgr.Get(job.ID),
		"regressions": regressions,
	})
}

// GET /api/v1/jobs/:id
func (h *APIHandler) handleGetJobStatus(c *gin.Context) {
	job := h.jobMgr.Get(c.Param("id"))
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// GET /api/v1/jobs
func (h *APIHandler) handleListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.jobMgr.List()})
}

// GET /api/v1/jobs/history — DB-backed paginated job history.
func (h *APIHandler) handleJobHistory(c *gin.Context) {
	if h.dbStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not connected"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	jobList, totalCount, err := h.dbStore.ListJobs(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job history", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       jobList,
		"totalCount": totalCount,
		"page":       page,
		"limit":      limit,
	})
}

// POST /api/v1/baselines/:name
func (h *APIHandler) handleSetBaseline(c *gin.Context) {
	name := c.Param("name")
	var req struct {
		CubeCounts []int `json:"cubeCounts" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	h.watchlist.SetBaseline(name, req.CubeCounts)
	baseline, _ := h.watchlist.Baseline(name)
	if h.dbStore != nil {
		_ = h.dbStore.SaveBaseline(c.Request.Context(), baseline)
	}
	c.JSON(http.StatusOK, gin.H{"status": "baseline_set", "baseline": baseline})
}

// POST /api/v1/compare — compares two cube-set results for shape divergence.
func (h *APIHandler) handleCompareCubeCounts(c *gin.Context) {
	var req struct {
		NVars int      `json:"nVars" binding:"required"`
		A     []string `json:"a" binding:"required"`
		B     []string `json:"b" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	a, err := parseCubes(req.A)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cube in a", "details": err.Error()})
		return
	}
	b, err := parseCubes(req.B)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cube in b", "details": err.Error()})
		return
	}
	agreeing, total := metrics.CompareCubeCounts(a, b, req.NVars)
	resp := gin.H{"agreeing": agreeing, "total": total}

	// ARI/VI need equal-length partitions to pair elements index-for-index,
	// which only holds when both engines emitted the same number of cubes.
	if len(a) == len(b) {
		pa, pb := metrics.BucketPartition(a), metrics.BucketPartition(b)
		resp["adjustedRandIndex"] = metrics.AdjustedRandIndex(pa, pb)
		resp["variationOfInformation"] = metrics.VariationOfInformation(pa, pb)
	}
	c.JSON(http.StatusOK, resp)
}

func parseCubes(s []string) ([]cube.Cube, error) {
	out := make([]cube.Cube, len(s))
	for i, lit := range s {
		c, err := cube.Parse(lit)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
