package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/database"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "algorithms.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, database.Connect())
	t.Cleanup(func() { database.Close() })
}

func TestImportAlgorithmsFromCSV(t *testing.T) {
	setupTestDB(t)

	path := writeCSV(t, `Name,Notation,Description,Method,Difficulty
T Perm,R U R' U' R' F R2 U' R' U' R U R' F',Swaps two corners and two edges,CFOP,2
Sune,R U R' U R U2 R',Basic OLL case,CFOP,1
,missing name,,CFOP,1
`)

	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportAlgorithms(config)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.MethodsCreated)
	assert.Empty(t, result.Errors)

	method, err := database.NewMethodRepository().GetByName("CFOP")
	require.NoError(t, err)

	algorithms, err := database.NewAlgorithmRepository().GetByMethod(method.ID)
	require.NoError(t, err)
	assert.Len(t, algorithms, 2)
}

func TestImportAlgorithmsUpsert(t *testing.T) {
	setupTestDB(t)

	config := DefaultImportConfig()
	config.FilePath = writeCSV(t, `Name,Notation,Description,Method,Difficulty
Sune,R U R' U R U2 R',,CFOP,1
`)
	_, err := ImportAlgorithms(config)
	require.NoError(t, err)

	// Re-importing the same name with new data updates in place
	config.FilePath = writeCSV(t, `Name,Notation,Description,Method,Difficulty
Sune,R U R' U R U2 R',Updated description,CFOP,2
`)
	result, err := ImportAlgorithms(config)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	method, err := database.NewMethodRepository().GetByName("CFOP")
	require.NoError(t, err)
	algorithms, err := database.NewAlgorithmRepository().GetByMethod(method.ID)
	require.NoError(t, err)
	require.Len(t, algorithms, 1)
	assert.Equal(t, 2, algorithms[0].Difficulty)
	assert.Equal(t, "Updated description", algorithms[0].Description)
}

func TestImportAlgorithmsInvalidDifficulty(t *testing.T) {
	setupTestDB(t)

	config := DefaultImportConfig()
	config.FilePath = writeCSV(t, `Name,Notation,Description,Method,Difficulty
Sune,R U R' U R U2 R',,CFOP,9
`)

	result, err := ImportAlgorithms(config)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "invalid difficulty")
}
