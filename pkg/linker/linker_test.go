package linker_test

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedwiki/wikikit/pkg/errors"
	"github.com/fedwiki/wikikit/pkg/linker"
	"github.com/fedwiki/wikikit/pkg/testutil"
)

var layout = linker.Layout{
	Wiki:   "/w/wiki-master",
	Server: "/w/wiki-server-master",
	Client: "/w/wiki-client-master",
}

func TestPlan_Order(t *testing.T) {
	steps := linker.Plan(layout)

	require.Len(t, steps, 5)
	want := []struct {
		dir  string
		args []string
	}{
		{"/w/wiki-client-master", []string{"install"}},
		{"/w/wiki-server-master", []string{"install"}},
		{"/w/wiki-master", []string{"link", "/w/wiki-client-master"}},
		{"/w/wiki-master", []string{"link", "/w/wiki-server-master"}},
		{"/w/wiki-master", []string{"install"}},
	}
	for i, w := range want {
		assert.Equal(t, w.dir, steps[i].Dir, "step %d", i)
		assert.Equal(t, w.args, steps[i].Args, "step %d", i)
		assert.Equal(t, linker.StatusPending, steps[i].Status)
	}
}

func TestPlan_Plugins(t *testing.T) {
	l := layout
	l.Plugins = []string{"/w/wiki-plugin-roster-master"}

	steps := linker.Plan(l)
	require.Len(t, steps, 6)
	assert.Equal(t, "link wiki-plugin-roster-master", steps[4].Name)
	assert.Equal(t, []string{"link", "/w/wiki-plugin-roster-master"}, steps[4].Args)
	assert.Equal(t, []string{"install"}, steps[5].Args)
}

func TestRun_AllSteps(t *testing.T) {
	runner := &testutil.RecordingRunner{}
	steps := linker.Plan(layout)

	var transitions int
	err := linker.New(runner, "PATH=/w/node/bin").Run(context.Background(), "/w/node/bin/npm", steps, func([]linker.Step) error {
		transitions++
		return nil
	})
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 5)
	for i, c := range calls {
		assert.Equal(t, "/w/node/bin/npm", c.Name)
		assert.Equal(t, steps[i].Dir, c.Dir)
		assert.Equal(t, []string{"PATH=/w/node/bin"}, c.Env)
		assert.Equal(t, linker.StatusDone, steps[i].Status)
	}
	assert.Equal(t, 10, transitions, "running and done for every step")
	assert.Zero(t, linker.Pending(steps))
}

func TestRun_StopsOnFailure(t *testing.T) {
	runner := &testutil.RecordingRunner{FailOn: 3}
	steps := linker.Plan(layout)

	err := linker.New(runner).Run(context.Background(), "npm", steps, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))

	assert.Len(t, runner.Calls(), 3)
	assert.Equal(t, linker.StatusDone, steps[0].Status)
	assert.Equal(t, linker.StatusDone, steps[1].Status)
	assert.Equal(t, linker.StatusFailed, steps[2].Status)
	assert.Equal(t, linker.StatusPending, steps[3].Status)
	assert.Equal(t, linker.StatusPending, steps[4].Status)
}

func TestRun_ResumesAfterFailure(t *testing.T) {
	runner := &testutil.RecordingRunner{FailOn: 3}
	steps := linker.Plan(layout)
	require.Error(t, linker.New(runner).Run(context.Background(), "npm", steps, nil))

	runner.Reset()
	require.NoError(t, linker.New(runner).Run(context.Background(), "npm", steps, nil))

	calls := runner.Calls()
	require.Len(t, calls, 3, "done steps are skipped")
	assert.Equal(t, []string{"link", "/w/wiki-client-master"}, calls[0].Args)
}

func TestRun_CheckpointErrorAborts(t *testing.T) {
	runner := &testutil.RecordingRunner{}
	steps := linker.Plan(layout)

	err := linker.New(runner).Run(context.Background(), "npm", steps, func([]linker.Step) error {
		return fmt.Errorf("disk full")
	})
	require.Error(t, err)
	assert.Empty(t, runner.Calls(), "nothing runs when the running state cannot be recorded")
}

func TestMerge(t *testing.T) {
	previous := linker.Plan(layout)
	previous[0].Status = linker.StatusDone
	previous[1].Status = linker.StatusFailed
	previous[2].Status = linker.StatusDone

	moved := layout
	moved.Client = "/w/wiki-client-dev"
	merged := linker.Merge(linker.Plan(moved), previous)

	assert.Equal(t, linker.StatusPending, merged[0].Status, "client dir changed")
	assert.Equal(t, linker.StatusPending, merged[1].Status, "failed is not carried")
	assert.Equal(t, linker.StatusPending, merged[2].Status, "link args changed")

	same := linker.Merge(linker.Plan(layout), previous)
	assert.Equal(t, linker.StatusDone, same[0].Status)
	assert.Equal(t, linker.StatusDone, same[2].Status)
	assert.Equal(t, 3, linker.Pending(same))

	linker.Reset(same)
	assert.Equal(t, 5, linker.Pending(same))
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stdout, stderr bytes.Buffer
	r := linker.NewExecRunner(&stdout, &stderr, "WIKIKIT_TEST=hello")
	dir := t.TempDir()

	err := r.Run(context.Background(), linker.Command{Name: "sh", Args: []string{"-c", "pwd; echo $WIKIKIT_TEST"}, Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hello")

	err = r.Run(context.Background(), linker.Command{Name: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}, Dir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSubprocess))
	assert.Equal(t, 3, errors.GetErrorDetails(err)["exitCode"])
	assert.Contains(t, stderr.String(), "boom")

	err = r.Run(context.Background(), linker.Command{Name: "/definitely/not/here", Dir: dir})
	require.Error(t, err)
	assert.Equal(t, 127, errors.GetErrorDetails(err)["exitCode"])
}
