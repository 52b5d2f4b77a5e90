package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.MasteryPercentage, "no records must not divide by zero")
}

func TestComputeStatsCounts(t *testing.T) {
	records := []models.LearningRecord{
		{Status: models.StatusMastered},
		{Status: models.StatusMastered},
		{Status: models.StatusLearning},
		{Status: models.StatusToLearn},
	}

	s := ComputeStats(records)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Mastered)
	assert.Equal(t, 1, s.Learning)
	assert.Equal(t, 1, s.ToLearn)
	assert.Equal(t, 50, s.MasteryPercentage)
}

func TestComputeStatsRounding(t *testing.T) {
	records := []models.LearningRecord{
		{Status: models.StatusMastered},
		{Status: models.StatusLearning},
		{Status: models.StatusLearning},
	}

	s := ComputeStats(records)
	assert.Equal(t, 33, s.MasteryPercentage)

	records = append(records, models.LearningRecord{Status: models.StatusMastered})
	s = ComputeStats(records)
	assert.Equal(t, 50, s.MasteryPercentage)
}
