// Package evergreen renders generated tasks into the scheduler's task
// configuration document.
package evergreen

// Configuration is the root of the scheduler's JSON task document.
type Configuration struct {
	ExecTimeoutSecs int        `json:"exec_timeout_secs,omitempty"`
	Tasks           []*Task    `json:"tasks,omitempty"`
	BuildVariants   []*Variant `json:"buildvariants,omitempty"`
}

// Task is a full task definition with commands and a priority.
type Task struct {
	Name     string     `json:"name"`
	Priority int        `json:"priority,omitempty"`
	Commands []*Command `json:"commands,omitempty"`
}

// Command is either a named scheduler command with params or a call to a
// project function with vars; exactly one of Command and Func is set.
type Command struct {
	Command string            `json:"command,omitempty"`
	Func    string            `json:"func,omitempty"`
	Params  map[string]any    `json:"params,omitempty"`
	Vars    map[string]string `json:"vars,omitempty"`
}

// Variant lists task references for one build variant. The referenced task
// bodies are assumed to be defined elsewhere.
type Variant struct {
	Name  string     `json:"name"`
	Tasks []TaskSpec `json:"tasks"`
}

// TaskSpec is a bare reference to a task by name.
type TaskSpec struct {
	Name string `json:"name"`
}
