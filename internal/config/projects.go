package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ProjectsRegistry holds the list of known projects
type ProjectsRegistry struct {
	Projects       []Project `json:"projects"`
	DefaultProject string    `json:"defaultProject"`
}

// Project represents a registered project on the remote service
type Project struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

var (
	// ErrProjectNotFound is returned when a project doesn't exist in the registry
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicateProject is returned when trying to add a project that already exists
	ErrDuplicateProject = errors.New("project already exists")
	// ErrEmptyName is returned when the project name is empty
	ErrEmptyName = errors.New("project name cannot be empty")
	// ErrEmptyID is returned when the project id is empty
	ErrEmptyID = errors.New("project id cannot be empty")
)

// LoadProjectsRegistry loads the projects registry from disk
// Returns an empty registry if the file doesn't exist
func LoadProjectsRegistry() (*ProjectsRegistry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &ProjectsRegistry{
			Projects:       []Project{},
			DefaultProject: "",
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var registry ProjectsRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, err
	}

	return &registry, nil
}

// SaveProjectsRegistry saves the projects registry to disk
func SaveProjectsRegistry(reg *ProjectsRegistry) error {
	path, err := registryPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Add adds a new project to the registry
func (r *ProjectsRegistry) Add(name, id string) error {
	if name == "" {
		return ErrEmptyName
	}
	if id == "" {
		return ErrEmptyID
	}

	for _, p := range r.Projects {
		if p.Name == name {
			return ErrDuplicateProject
		}
	}

	r.Projects = append(r.Projects, Project{
		Name: name,
		ID:   id,
	})

	// First project becomes the default
	if len(r.Projects) == 1 {
		r.DefaultProject = name
	}

	return nil
}

// Remove removes a project from the registry
func (r *ProjectsRegistry) Remove(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	found := false
	for i, p := range r.Projects {
		if p.Name == name {
			r.Projects = append(r.Projects[:i], r.Projects[i+1:]...)
			found = true
			break
		}
	}

	if !found {
		return ErrProjectNotFound
	}

	if r.DefaultProject == name {
		r.DefaultProject = ""
		if len(r.Projects) > 0 {
			r.DefaultProject = r.Projects[0].Name
		}
	}

	return nil
}

// SetDefault sets the default project
func (r *ProjectsRegistry) SetDefault(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	for _, p := range r.Projects {
		if p.Name == name {
			r.DefaultProject = name
			return nil
		}
	}

	return ErrProjectNotFound
}

// Get retrieves a project by name
func (r *ProjectsRegistry) Get(name string) (*Project, error) {
	for _, p := range r.Projects {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, ErrProjectNotFound
}

// GetDefault returns the default project, or nil if none is set
func (r *ProjectsRegistry) GetDefault() *Project {
	if r.DefaultProject == "" {
		return nil
	}
	for _, p := range r.Projects {
		if p.Name == r.DefaultProject {
			return &p
		}
	}
	return nil
}

// registryPath is a variable holding the function that returns the path to
// the projects registry file. Overridden in tests.
var registryPath = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taskdeck", "projects.json"), nil
}
