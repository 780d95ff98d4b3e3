package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"gantt2svg/internal/arrow"
)

// Task is one bar on the chart.
type Task struct {
	ID       string
	Name     string
	Start    time.Time
	End      time.Time
	Resource string
	Deps     []Dependency

	Progress     int       // percent complete, 0-100
	Deadline     time.Time // zero when the task has no deadline
	Consolidated time.Time // zero when nothing is consolidated
	Labels       []string
	Color        string // bar fill override
	Parent       string

	// Set by arrangeTasks.
	Container bool
	Depth     int
}

// Dependency links another task (the origin) to the task that owns it.
type Dependency struct {
	From string
	Kind arrow.LinkKind
}

var requiredColumns = []string{"id", "name", "start", "end"}

// dateFormats lists the accepted layouts for start and end columns
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// colorPattern accepts hex colors and plain CSS color names.
var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-zA-Z]+)$`)

// parseCSV reads and parses the CSV file containing tasks
func parseCSV(filename string) ([]Task, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return parseTasks(file)
}

// parseTasks reads tasks from CSV data. The header row is matched
// case-insensitively; id, name, start and end are required, the other
// columns are optional. Tasks are returned in tree order (see arrangeTasks).
func parseTasks(r io.Reader) ([]Task, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columnMap[name]; !ok {
			return nil, fmt.Errorf("column '%s' not found in CSV. Available columns: %v", name, header)
		}
	}

	var tasks []Task
	seen := make(map[string]bool)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		task, err := parseTaskRow(record, columnMap)
		if err != nil {
			return nil, fmt.Errorf("error parsing CSV row %d: %w", line, err)
		}
		if seen[task.ID] {
			return nil, fmt.Errorf("error parsing CSV row %d: duplicate task id '%s'", line, task.ID)
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}

	for _, task := range tasks {
		for _, dep := range task.Deps {
			if dep.From == task.ID {
				return nil, fmt.Errorf("task '%s' depends on itself", task.ID)
			}
			if !seen[dep.From] {
				return nil, fmt.Errorf("task '%s' depends on unknown task '%s'", task.ID, dep.From)
			}
		}
	}

	return arrangeTasks(tasks)
}

// arrangeTasks orders tasks as a tree: roots by start date then ID, each
// followed by its children ordered the same way. A task with children becomes
// a container spanning all of its descendants, and is ordered by that span.
func arrangeTasks(tasks []Task) ([]Task, error) {
	byID := make(map[string]*Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	children := make(map[string][]*Task)
	var roots []*Task
	for i := range tasks {
		t := &tasks[i]
		if t.Parent == "" {
			roots = append(roots, t)
			continue
		}
		if t.Parent == t.ID {
			return nil, fmt.Errorf("task '%s' is its own parent", t.ID)
		}
		if _, ok := byID[t.Parent]; !ok {
			return nil, fmt.Errorf("task '%s' has unknown parent '%s'", t.ID, t.Parent)
		}
		children[t.Parent] = append(children[t.Parent], t)
	}

	// span widens containers to their descendants, bottom up.
	var span func(t *Task, depth int)
	span = func(t *Task, depth int) {
		t.Depth = depth
		kids := children[t.ID]
		t.Container = len(kids) > 0
		for i, k := range kids {
			span(k, depth+1)
			if i == 0 || k.Start.Before(t.Start) {
				t.Start = k.Start
			}
			if i == 0 || k.End.After(t.End) {
				t.End = k.End
			}
		}
	}
	for _, t := range roots {
		span(t, 0)
	}

	out := make([]Task, 0, len(tasks))
	var walk func(level []*Task)
	walk = func(level []*Task) {
		sortByStart(level)
		for _, t := range level {
			out = append(out, *t)
			walk(children[t.ID])
		}
	}
	walk(roots)

	// Anything unreached sits on a parent cycle.
	if len(out) != len(tasks) {
		reached := make(map[string]bool, len(out))
		for _, t := range out {
			reached[t.ID] = true
		}
		for _, t := range tasks {
			if !reached[t.ID] {
				return nil, fmt.Errorf("task '%s' is part of a parent cycle", t.ID)
			}
		}
	}
	return out, nil
}

func sortByStart(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].Start.Equal(tasks[j].Start) {
			return tasks[i].Start.Before(tasks[j].Start)
		}
		return tasks[i].ID < tasks[j].ID
	})
}

func parseTaskRow(record []string, columnMap map[string]int) (Task, error) {
	field := func(name string) string {
		idx, ok := columnMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	task := Task{
		ID:       field("id"),
		Name:     field("name"),
		Resource: field("resource"),
		Parent:   field("parent"),
		Color:    field("color"),
		Labels:   splitList(field("labels")),
	}
	if task.ID == "" {
		return Task{}, fmt.Errorf("empty task id")
	}

	var err error
	task.Start, err = parseDate(field("start"))
	if err != nil {
		return Task{}, fmt.Errorf("task '%s' start: %w", task.ID, err)
	}
	task.End, err = parseDate(field("end"))
	if err != nil {
		return Task{}, fmt.Errorf("task '%s' end: %w", task.ID, err)
	}
	if task.End.Before(task.Start) {
		return Task{}, fmt.Errorf("task '%s' ends before it starts", task.ID)
	}

	if task.Color != "" && !colorPattern.MatchString(task.Color) {
		return Task{}, fmt.Errorf("task '%s' has invalid color '%s'", task.ID, task.Color)
	}

	task.Progress, err = parseProgress(field("progress"))
	if err != nil {
		return Task{}, fmt.Errorf("task '%s' progress: %w", task.ID, err)
	}
	if s := field("deadline"); s != "" {
		if task.Deadline, err = parseDate(s); err != nil {
			return Task{}, fmt.Errorf("task '%s' deadline: %w", task.ID, err)
		}
	}
	if s := field("consolidated"); s != "" {
		if task.Consolidated, err = parseDate(s); err != nil {
			return Task{}, fmt.Errorf("task '%s' consolidated: %w", task.ID, err)
		}
	}

	task.Deps = parseDependencies(field("depends"))
	return task, nil
}

// parseProgress accepts "40" or "40%". Empty means 0.
func parseProgress(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid percentage '%s'", s)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("percentage %d out of range 0-100", n)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDate tries each accepted layout in turn
func parseDate(s string) (time.Time, error) {
	var t time.Time
	var err error
	for _, format := range dateFormats {
		t, err = time.Parse(format, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, err)
}

// parseDependencies parses "1;2:SS;3:EE". A missing kind means end-to-start.
func parseDependencies(s string) []Dependency {
	var deps []Dependency
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, kind, _ := strings.Cut(part, ":")
		deps = append(deps, Dependency{
			From: strings.TrimSpace(id),
			Kind: arrow.ParseLinkKind(kind),
		})
	}
	return deps
}
