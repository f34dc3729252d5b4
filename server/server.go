package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/river-crossing-rl/policies"
	"github.com/zeu5/river-crossing-rl/river"
	"github.com/zeu5/river-crossing-rl/types"
)

// DefaultRolloutHorizon bounds /rollout when no horizon is given
const DefaultRolloutHorizon = 50

// Server exposes a trained table over HTTP: the action space, the recorded
// values, the greedy action of any state and greedy rollouts
type Server struct {
	Addr   string
	server *http.Server

	lock  *sync.Mutex
	table *types.QTable
	stats *types.Stats
}

type actionResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Cargo string `json:"cargo,omitempty"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// PolicyRequest names the entities at each location
type PolicyRequest struct {
	Left      []string `json:"left"`
	Transport []string `json:"transport"`
	Right     []string `json:"right"`
}

type stepResponse struct {
	State     string  `json:"state"`
	Action    int     `json:"action"`
	Name      string  `json:"name"`
	Reward    float64 `json:"reward"`
	NextState string  `json:"next_state"`
}

func New(addr string, table *types.QTable, stats *types.Stats) *Server {
	s := &Server{
		Addr:  addr,
		lock:  new(sync.Mutex),
		table: table,
		stats: stats,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/actions", s.handleActions)
	r.GET("/qtable", s.handleQTable)
	r.POST("/policy", s.handlePolicy)
	r.GET("/rollout", s.handleRollout)
	r.GET("/stats", s.handleStats)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Handler serving the routes
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleActions(c *gin.Context) {
	out := make([]actionResponse, 0, river.NumActions)
	for _, a := range river.Actions() {
		r := actionResponse{
			Index: a.Index,
			Name:  a.String(),
			From:  a.From.String(),
			To:    a.To.String(),
		}
		if a.Cargo != nil {
			r.Cargo = a.Cargo.String()
		}
		out = append(out, r)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleQTable(c *gin.Context) {
	s.lock.Lock()
	entries := s.table.Entries()
	s.lock.Unlock()
	c.JSON(http.StatusOK, gin.H{"size": len(entries), "entries": entries})
}

func parseEntities(names []string) ([]river.Entity, error) {
	out := make([]river.Entity, len(names))
	for i, n := range names {
		e, err := river.ParseEntity(n)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// State described by the request, the sets must partition the entities
func (r PolicyRequest) State() (river.State, error) {
	left, err := parseEntities(r.Left)
	if err != nil {
		return river.State{}, err
	}
	transport, err := parseEntities(r.Transport)
	if err != nil {
		return river.State{}, err
	}
	right, err := parseEntities(r.Right)
	if err != nil {
		return river.State{}, err
	}
	return river.NewState(left, transport, right)
}

func (s *Server) handlePolicy(c *gin.Context) {
	req := PolicyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	state, err := req.State()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.lock.Lock()
	action, value := s.table.ArgMax(state.Hash())
	known := s.table.HasState(state.Hash())
	s.lock.Unlock()

	a, _ := river.ActionFromIndex(action)
	c.JSON(http.StatusOK, gin.H{
		"state":  state.Hash(),
		"action": action,
		"name":   a.String(),
		"value":  value,
		"known":  known,
	})
}

func (s *Server) handleRollout(c *gin.Context) {
	horizon := DefaultRolloutHorizon
	if h := c.Query("horizon"); h != "" {
		parsed, err := strconv.Atoi(h)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "horizon should be a positive integer"})
			return
		}
		horizon = parsed
	}

	s.lock.Lock()
	trace, outcome, err := types.Rollout(river.NewEnvironment(), policies.NewGreedy(s.table), horizon)
	s.lock.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	steps := make([]stepResponse, trace.Len())
	for i := range steps {
		state, action, reward, next, _ := trace.Get(i)
		a, _ := river.ActionFromIndex(action)
		steps[i] = stepResponse{
			State:     state.Hash(),
			Action:    action,
			Name:      a.String(),
			Reward:    reward,
			NextState: next.Hash(),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
		"return":  trace.Return(),
		"steps":   steps,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusOK, types.Summary{})
		return
	}
	s.lock.Lock()
	summary := s.stats.Summary()
	s.lock.Unlock()
	c.JSON(http.StatusOK, summary)
}

// Start serving in the background until ctx is cancelled or Stop is called
func (s *Server) Start(ctx context.Context) {
	go func() {
		s.server.ListenAndServe()
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop shuts the listener down, waiting at most two seconds for in flight
// requests
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
