package loginattempt_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-google-signin/server/loginattempt"
	"github.com/stretchr/testify/require"
)

const testTokenLength = 32

func TestIssueCreatesDistinctAttempts(t *testing.T) {
	repo := loginattempt.NewInMemoryRepo(10*time.Minute, testTokenLength)
	defer repo.Close()

	first, err := repo.Issue()
	require.NoError(t, err)
	second, err := repo.Issue()
	require.NoError(t, err)

	require.NotEmpty(t, first.Token)
	require.NotEmpty(t, first.Nonce)
	require.NotEqual(t, first.Token, second.Token)
	require.NotEqual(t, first.Nonce, second.Nonce)
	require.WithinDuration(t, first.CreatedAt.Add(10*time.Minute), first.ExpiresAt, time.Second)
}

func TestValidateSucceedsExactlyOnce(t *testing.T) {
	repo := loginattempt.NewInMemoryRepo(10*time.Minute, testTokenLength)
	defer repo.Close()

	attempt, err := repo.Issue()
	require.NoError(t, err)

	validated, err := repo.Validate(attempt.Token)
	require.NoError(t, err)
	require.Equal(t, attempt.Nonce, validated.Nonce)
	require.True(t, validated.Consumed)

	_, err = repo.Validate(attempt.Token)
	require.ErrorIs(t, err, loginattempt.ReplayedStateErr)

	// Every subsequent call keeps failing the same way
	_, err = repo.Validate(attempt.Token)
	require.ErrorIs(t, err, loginattempt.ReplayedStateErr)
}

func TestValidateUnknownState(t *testing.T) {
	repo := loginattempt.NewInMemoryRepo(10*time.Minute, testTokenLength)
	defer repo.Close()

	_, err := repo.Validate("never-issued")
	require.ErrorIs(t, err, loginattempt.UnknownStateErr)

	_, err = repo.Validate("")
	require.ErrorIs(t, err, loginattempt.UnknownStateErr)
}

func TestValidateExpiredStateEvenOnFirstUse(t *testing.T) {
	repo := loginattempt.NewInMemoryRepo(10*time.Millisecond, testTokenLength)
	defer repo.Close()

	attempt, err := repo.Issue()
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = repo.Validate(attempt.Token)
	require.ErrorIs(t, err, loginattempt.ExpiredStateErr)
}

func TestConcurrentValidateConsumesOnce(t *testing.T) {
	repo := loginattempt.NewInMemoryRepo(10*time.Minute, testTokenLength)
	defer repo.Close()

	attempt, err := repo.Issue()
	require.NoError(t, err)

	const goroutines = 32
	var wg sync.WaitGroup
	results := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Validate(attempt.Token)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, replays int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, loginattempt.ReplayedStateErr)
			replays++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, goroutines-1, replays)
}
