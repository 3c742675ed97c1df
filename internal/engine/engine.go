// Package engine shares one weight model between any number of workers. Each
// worker owns its board, policy cache and knowledge adapter.
package engine

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hailam/goprior/internal/knowledge"
	"github.com/hailam/goprior/internal/model"
)

// DefaultWeightsFile is the weight file name searched for by AutoLoadWeights.
const DefaultWeightsFile = "features.weights"

// ErrNoWeights is returned when no weight file is found.
var ErrNoWeights = errors.New("no weight file found")

// Engine holds the configuration and model shared by its workers.
type Engine struct {
	mu    sync.RWMutex
	model *model.Model
	opts  knowledge.Options
}

// NewEngine creates an engine with an empty model.
func NewEngine(opts knowledge.Options) *Engine {
	return &Engine{model: model.Empty(), opts: opts}
}

// Options returns the knowledge configuration.
func (e *Engine) Options() knowledge.Options { return e.opts }

// Model returns the shared model. It must not be modified.
func (e *Engine) Model() *model.Model {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model
}

// SetModel replaces the shared model. Workers created earlier keep the
// previous one.
func (e *Engine) SetModel(m *model.Model) {
	if m == nil {
		m = model.Empty()
	}
	e.mu.Lock()
	e.model = m
	e.mu.Unlock()
}

// LoadWeights loads a weight file. On failure the empty model is installed,
// so scoring stays available with all priors neutral.
func (e *Engine) LoadWeights(filename string) error {
	m, err := model.Load(filename)
	if err != nil {
		log.Printf("weights not loaded: %v (using empty model)", err)
		e.SetModel(model.Empty())
		return err
	}
	e.SetModel(m)
	log.Printf("weights loaded from %s (k=%d, %d features)", filename, m.K(), m.Size())
	return nil
}

// AutoLoadWeights loads DefaultWeightsFile from the first directory that
// has one.
func (e *Engine) AutoLoadWeights(dirs ...string) error {
	for _, dir := range dirs {
		path := filepath.Join(dir, DefaultWeightsFile)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := e.LoadWeights(path); err != nil {
			continue
		}
		return nil
	}
	err := fmt.Errorf("%w in %v", ErrNoWeights, dirs)
	log.Printf("weights not loaded: %v (using empty model)", err)
	e.SetModel(model.Empty())
	return err
}

// NewWorker creates a worker bound to the current model.
func (e *Engine) NewWorker(id int) *Worker {
	return newWorker(id, e.Model(), e.opts)
}
