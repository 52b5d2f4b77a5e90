package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/database"
	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// Drill is a single recall exercise: given the algorithm's name and case,
// pick (or recall) the right move sequence.
type Drill struct {
	Algorithm    models.Algorithm
	Options      []string // Candidate notations, shuffled
	CorrectIndex int      // Index of the right notation in Options
}

// Builder turns a due-review queue into recall drills
type Builder struct {
	algorithmRepo *database.AlgorithmRepository
	rnd           *rand.Rand
}

// NewBuilder creates a drill builder
func NewBuilder() *Builder {
	return &Builder{
		algorithmRepo: database.NewAlgorithmRepository(),
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildDrills creates one drill per due record. Distractor notations come
// from other algorithms of the same method so the choices look plausible.
// Records whose algorithm vanished from the catalog are skipped.
func (b *Builder) BuildDrills(due []models.LearningRecord, optionCount int) ([]Drill, error) {
	if optionCount < 2 {
		return nil, fmt.Errorf("quiz needs at least 2 options, got %d", optionCount)
	}

	drills := make([]Drill, 0, len(due))
	for _, record := range due {
		alg, err := b.algorithmRepo.GetAlgorithm(record.AlgorithmID)
		if errors.Is(err, learning.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		drill, err := b.buildDrill(*alg, optionCount)
		if err != nil {
			return nil, err
		}
		drills = append(drills, drill)
	}

	return drills, nil
}

func (b *Builder) buildDrill(alg models.Algorithm, optionCount int) (Drill, error) {
	siblings, err := b.algorithmRepo.GetByMethod(alg.MethodID)
	if err != nil {
		return Drill{}, err
	}

	// Collect distractor notations, excluding the answer itself
	distractors := make([]string, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != alg.ID && s.Notation != alg.Notation {
			distractors = append(distractors, s.Notation)
		}
	}
	b.rnd.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > optionCount-1 {
		distractors = distractors[:optionCount-1]
	}

	options := append(distractors, alg.Notation)
	b.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, opt := range options {
		if opt == alg.Notation {
			correct = i
			break
		}
	}

	return Drill{Algorithm: alg, Options: options, CorrectIndex: correct}, nil
}
