package todo

// Task is a task that belongs to a project.
type Task struct {
	// Index is the global open-index. It is -1 for done tasks.
	Index       int    `json:"index"`
	Project     string `json:"project"`
	Description string `json:"description"`
	Done        bool   `json:"done"`

	// Line is the zero-based source line number of the task.
	Line int `json:"line"`
}

// Number is the 1-based position shown to users.
func (t Task) Number() int {
	return t.Index + 1
}

// Group is a run of consecutive tasks from the same project.
type Group struct {
	Project string `json:"project"`
	Tasks   []Task `json:"tasks"`
}

// ProjectSummary holds per-project counters.
type ProjectSummary struct {
	Name           string `json:"name"`
	Open           int    `json:"open"`
	Done           int    `json:"done"`
	FocusSessions  int    `json:"focus_sessions"`
	CancelledFocus int    `json:"cancelled_focus_sessions"`
}

// Projects returns project names in first-appearance order without
// duplicates. Headers with an empty name are skipped.
func (d *Document) Projects() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range d.entries {
		if e.Kind != KindProject || e.Text == "" {
			continue
		}
		if _, ok := seen[e.Text]; ok {
			continue
		}
		seen[e.Text] = struct{}{}
		names = append(names, e.Text)
	}
	return names
}

// HasProject reports whether a header with the given name exists.
func (d *Document) HasProject(name string) bool {
	return d.projectHeader(name) >= 0
}

// All returns every open and done task that belongs to a project.
func (d *Document) All() []Task {
	var tasks []Task
	open := 0
	for _, e := range d.entries {
		if !e.IsTask() || e.Project == "" {
			continue
		}
		task := Task{
			Index:       -1,
			Project:     e.Project,
			Description: e.Text,
			Done:        e.Kind == KindDoneTask,
			Line:        e.Num,
		}
		if !task.Done {
			task.Index = open
			open++
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// OpenTasks returns open tasks numbered 0..N-1 in file order. Done tasks and
// tasks without a project do not take an index.
func (d *Document) OpenTasks() []Task {
	var tasks []Task
	for _, e := range d.entries {
		if e.Kind != KindOpenTask || e.Project == "" {
			continue
		}
		tasks = append(tasks, Task{
			Index:       len(tasks),
			Project:     e.Project,
			Description: e.Text,
			Line:        e.Num,
		})
	}
	return tasks
}

// Summaries returns counters for every project in first-appearance order.
// Sections of repeated headers are folded into the first one.
func (d *Document) Summaries() []ProjectSummary {
	names := d.Projects()
	byName := make(map[string]*ProjectSummary, len(names))
	out := make([]ProjectSummary, len(names))
	for i, name := range names {
		out[i].Name = name
		byName[name] = &out[i]
	}

	for _, e := range d.entries {
		s, ok := byName[e.Project]
		if !ok {
			continue
		}
		switch e.Kind {
		case KindOpenTask:
			s.Open++
		case KindDoneTask:
			s.Done++
		case KindFocus:
			if e.Cancelled {
				s.CancelledFocus++
			} else {
				s.FocusSessions++
			}
		}
	}
	return out
}

// GroupByProject splits tasks into runs that share a project, keeping order.
func GroupByProject(tasks []Task) []Group {
	var groups []Group
	for _, t := range tasks {
		if n := len(groups); n > 0 && groups[n-1].Project == t.Project {
			groups[n-1].Tasks = append(groups[n-1].Tasks, t)
			continue
		}
		groups = append(groups, Group{Project: t.Project, Tasks: []Task{t}})
	}
	return groups
}

// projectHeader returns the entry index of the first header named name, or -1.
func (d *Document) projectHeader(name string) int {
	for i, e := range d.entries {
		if e.Kind == KindProject && e.Text == name && name != "" {
			return i
		}
	}
	return -1
}

// sectionEnd returns the entry index of the next header after header, or the
// number of entries.
func (d *Document) sectionEnd(header int) int {
	for i := header + 1; i < len(d.entries); i++ {
		if d.entries[i].Kind == KindProject {
			return i
		}
	}
	return len(d.entries)
}

// subItemEnd returns the entry index just past the sub-item block of the task
// at entry index task. The block holds focus records, notes and indented
// lines. Blank lines belong to it only when a later block line follows, so
// the result always points after the last non-blank block line.
func (d *Document) subItemEnd(task int) int {
	end := task + 1
	for i := task + 1; i < len(d.entries); i++ {
		e := d.entries[i]
		if e.Blank() {
			continue
		}
		if e.IsSubItem() || e.Indented() {
			end = i + 1
			continue
		}
		break
	}
	return end
}

// openTaskEntry returns the entry index of the open task with the given
// global open-index.
func (d *Document) openTaskEntry(index int) (int, bool) {
	tasks := d.OpenTasks()
	if index < 0 || index >= len(tasks) {
		return 0, false
	}
	return tasks[index].Line, true
}
