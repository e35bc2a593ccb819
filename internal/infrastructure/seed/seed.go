// Package seed loads the user directory and providing companies from a YAML
// file for local runs.
package seed

import (
	"context"
	"fmt"
	"os"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"gopkg.in/yaml.v3"
)

type Data struct {
	Users     []entities.User    `yaml:"users"`
	Companies []entities.Company `yaml:"companies"`
}

func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	seen := make(map[string]bool, len(d.Users))
	for i, u := range d.Users {
		if u.ID == "" {
			return Data{}, fmt.Errorf("users[%d]: id is required", i)
		}
		if seen[u.ID] {
			return Data{}, fmt.Errorf("users[%d]: duplicate id %q", i, u.ID)
		}
		seen[u.ID] = true
		role, ok := entities.ParseRole(string(u.Role))
		if !ok {
			return Data{}, fmt.Errorf("users[%d]: unknown role %q", i, u.Role)
		}
		d.Users[i].Role = role
	}
	for i, c := range d.Companies {
		if c.ID == "" {
			return Data{}, fmt.Errorf("companies[%d]: id is required", i)
		}
	}
	return d, nil
}

// Apply upserts every entry. It is safe to run on each start.
func Apply(ctx context.Context, d Data, users interfaces.IUserRepository, companies interfaces.ICompanyRepository) error {
	for _, u := range d.Users {
		if err := users.Save(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, c := range d.Companies {
		if err := companies.Save(ctx, c); err != nil {
			return fmt.Errorf("seed company %s: %w", c.ID, err)
		}
	}
	return nil
}
