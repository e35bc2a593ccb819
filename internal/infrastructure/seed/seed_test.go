package seed

import (
	"context"
	"errors"
	"testing"

	"brcargo_cotacoes/internal/domain/entities"
	mock_interfaces "brcargo_cotacoes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const sample = `
users:
  - id: u-1
    name: Carla
    email: carla@brcargo.com.br
    role: Consultor
    active: true
  - id: u-2
    name: Otávio
    role: operador
    active: true
companies:
  - id: co-1
    name: BR Cargo Transportes
    tax_id: "11222333000181"
    active: true
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Users) != 2 || len(d.Companies) != 1 {
		t.Fatalf("unexpected data: %+v", d)
	}
	if d.Users[0].Role != entities.RoleConsultor || !d.Users[0].Active {
		t.Fatalf("role should be normalized: %+v", d.Users[0])
	}
	if d.Companies[0].TaxID != "11222333000181" {
		t.Fatalf("unexpected company: %+v", d.Companies[0])
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad role":     "users:\n  - id: u-1\n    role: chefe\n",
		"missing id":   "users:\n  - name: Carla\n    role: consultor\n",
		"duplicate id": "users:\n  - id: u-1\n    role: consultor\n  - id: u-1\n    role: gerente\n",
		"company id":   "companies:\n  - name: BR Cargo\n",
		"not yaml":     "users: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock_interfaces.NewMockIUserRepository(ctrl)
	companies := mock_interfaces.NewMockICompanyRepository(ctrl)
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	users.EXPECT().Save(gomock.Any(), d.Users[0]).Return(nil)
	users.EXPECT().Save(gomock.Any(), d.Users[1]).Return(nil)
	companies.EXPECT().Save(gomock.Any(), d.Companies[0]).Return(nil)

	if err := Apply(context.Background(), d, users, companies); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApply_StopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock_interfaces.NewMockIUserRepository(ctrl)
	companies := mock_interfaces.NewMockICompanyRepository(ctrl)
	d := Data{Users: []entities.User{{ID: "u-1", Role: entities.RoleConsultor}}}

	users.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	if err := Apply(context.Background(), d, users, companies); err == nil {
		t.Fatalf("expected error")
	}
}
