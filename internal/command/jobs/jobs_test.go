package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/agorabot/internal/command"
	"github.com/keshon/agorabot/internal/command/commandtest"
	"github.com/keshon/agorabot/pkg/jobmgr"
)

func TestJobs(t *testing.T) {
	s := commandtest.New()
	m := jobmgr.NewManager(nil)
	c := New(s, m)

	require.NoError(t, commandtest.Invoke(c, command.Source{}))
	assert.Equal(t, "No jobs are running.", s.LastText())

	stop := make(chan struct{})
	require.NoError(t, m.StartAsync("digest-upload", func(ctx context.Context) error {
		<-stop
		return nil
	}))
	require.NoError(t, commandtest.Invoke(c, command.Source{}))
	assert.Equal(t, "Running jobs: digest-upload", s.LastText())

	close(stop)
	require.NoError(t, m.Wait(context.Background()))
	assert.Equal(t, "", c.Usage())
}
