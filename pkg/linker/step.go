package linker

import "path/filepath"

// Status is the progress of one step
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Step is one package manager invocation
type Step struct {
	Name   string   `yaml:"name"`
	Dir    string   `yaml:"dir"`
	Args   []string `yaml:"args"`
	Status Status   `yaml:"status"`
}

// Layout names the directories the steps operate on
type Layout struct {
	Wiki    string
	Server  string
	Client  string
	Plugins []string
}

// Plan returns the steps for layout in execution order
func Plan(l Layout) []Step {
	steps := []Step{
		{Name: "install client", Dir: l.Client, Args: []string{"install"}},
		{Name: "install server", Dir: l.Server, Args: []string{"install"}},
		{Name: "link client", Dir: l.Wiki, Args: []string{"link", l.Client}},
		{Name: "link server", Dir: l.Wiki, Args: []string{"link", l.Server}},
	}
	for _, p := range l.Plugins {
		steps = append(steps, Step{Name: "link " + filepath.Base(p), Dir: l.Wiki, Args: []string{"link", p}})
	}
	steps = append(steps, Step{Name: "install wiki", Dir: l.Wiki, Args: []string{"install"}})

	for i := range steps {
		steps[i].Status = StatusPending
	}
	return steps
}

// Merge carries statuses from previous into planned for steps that are unchanged.
// A step counts as unchanged when its name, dir and args match.
func Merge(planned, previous []Step) []Step {
	done := make(map[string]Status, len(previous))
	for _, s := range previous {
		done[s.key()] = s.Status
	}
	out := make([]Step, len(planned))
	for i, s := range planned {
		if st, ok := done[s.key()]; ok && st == StatusDone {
			s.Status = StatusDone
		}
		out[i] = s
	}
	return out
}

// Reset marks every step pending
func Reset(steps []Step) {
	for i := range steps {
		steps[i].Status = StatusPending
	}
}

// Pending counts steps that are not done
func Pending(steps []Step) int {
	n := 0
	for _, s := range steps {
		if s.Status != StatusDone {
			n++
		}
	}
	return n
}

func (s Step) key() string {
	k := s.Name + "\x00" + s.Dir
	for _, a := range s.Args {
		k += "\x00" + a
	}
	return k
}
