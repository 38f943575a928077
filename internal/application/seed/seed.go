// Package seed loads a project with its households, assistance types and
// entitlements from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	assistanceApp "github.com/reliefops/cva/internal/application/assistance"
	assistanceDTO "github.com/reliefops/cva/internal/application/assistance/dto"
	entitlementApp "github.com/reliefops/cva/internal/application/entitlement"
	entitlementDTO "github.com/reliefops/cva/internal/application/entitlement/dto"
	householdApp "github.com/reliefops/cva/internal/application/household"
	householdDTO "github.com/reliefops/cva/internal/application/household/dto"
	projectApp "github.com/reliefops/cva/internal/application/project"
	projectDTO "github.com/reliefops/cva/internal/application/project/dto"
	"github.com/reliefops/cva/internal/domain/assistance"
	"github.com/reliefops/cva/internal/domain/entitlement"
	"github.com/reliefops/cva/internal/domain/household"
	"github.com/reliefops/cva/internal/domain/project"
	"github.com/reliefops/cva/internal/shared/logger"
)

// File is the seed document. It names an existing project by project_id or
// describes one under project, which is created and activated on first run.
//
//	project: {name: Cash for Shelter, country: KE, start_date: 2026-01-01, finance_code: FC-01}
//	assistance_types:
//	  - {name: Cash, kind: cash, unit: transfer, unit_value: "75", currency: USD}
//	households:
//	  - registration_number: HH-001
//	    consent: true
//	    members: [{first_name: Amina, last_name: Yusuf, gender: female, is_head: true}]
//	    entitlements: [{assistance_type: Cash, programme_total: "900"}]
type File struct {
	ProjectID       uint             `yaml:"project_id"`
	Project         *Project         `yaml:"project"`
	AssistanceTypes []AssistanceType `yaml:"assistance_types"`
	Households      []Household      `yaml:"households"`
}

type Project struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Country     string    `yaml:"country"`
	StartDate   time.Time `yaml:"start_date"`
	FinanceCode string    `yaml:"finance_code"`
}

type AssistanceType struct {
	Name      string          `yaml:"name"`
	Kind      string          `yaml:"kind"`
	Unit      string          `yaml:"unit"`
	UnitValue decimal.Decimal `yaml:"unit_value"`
	Currency  string          `yaml:"currency"`
}

type Member struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Gender     string `yaml:"gender"`
	NationalID string `yaml:"national_id"`
	Phone      string `yaml:"phone"`
	IsHead     bool   `yaml:"is_head"`
	IsProxy    bool   `yaml:"is_proxy"`
}

type Entitlement struct {
	AssistanceType string          `yaml:"assistance_type"`
	ProgrammeTotal decimal.Decimal `yaml:"programme_total"`
}

type Household struct {
	RegistrationNumber string        `yaml:"registration_number"`
	Address            string        `yaml:"address"`
	Consent            bool          `yaml:"consent"`
	Members            []Member      `yaml:"members"`
	Entitlements       []Entitlement `yaml:"entitlements"`
}

// Result counts what a run created. Rows that already existed are skipped.
type Result struct {
	Projects        int
	AssistanceTypes int
	Households      int
	Entitlements    int
	Skipped         int
}

// Parse decodes a seed document and rejects unknown fields.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if (f.ProjectID == 0) == (f.Project == nil) {
		return nil, fmt.Errorf("seed file: exactly one of project_id and project is required")
	}
	return &f, nil
}

func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

type Seeder struct {
	projects   *projectApp.Service
	assistance *assistanceApp.Service
	households *householdApp.Service
	ledger     *entitlementApp.Ledger
	logger     logger.Interface
}

func NewSeeder(
	projectSvc *projectApp.Service,
	assistanceSvc *assistanceApp.Service,
	householdSvc *householdApp.Service,
	ledger *entitlementApp.Ledger,
	log logger.Interface,
) *Seeder {
	return &Seeder{
		projects:   projectSvc,
		assistance: assistanceSvc,
		households: householdSvc,
		ledger:     ledger,
		logger:     log,
	}
}

// Apply writes the document through the regular application services, so
// every row is validated and audited. Running it twice creates nothing new.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	projectID, err := s.resolveProject(ctx, f, res)
	if err != nil {
		return nil, err
	}

	typeIDs, err := s.existingTypes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, at := range f.AssistanceTypes {
		if _, ok := typeIDs[at.Name]; ok {
			res.Skipped++
			continue
		}
		created, err := s.assistance.Create(ctx, assistanceDTO.CreateAssistanceTypeRequest{
			ProjectID:    projectID,
			Name:         at.Name,
			Kind:         at.Kind,
			Unit:         at.Unit,
			UnitValue:    at.UnitValue,
			CurrencyCode: at.Currency,
		})
		if err != nil {
			return res, fmt.Errorf("assistance type %q: %w", at.Name, err)
		}
		typeIDs[at.Name] = created.ID
		res.AssistanceTypes++
	}

	for _, h := range f.Households {
		if err := s.applyHousehold(ctx, projectID, h, typeIDs, res); err != nil {
			return res, fmt.Errorf("household %q: %w", h.RegistrationNumber, err)
		}
	}

	s.logger.Infow("seed applied",
		"project_id", projectID,
		"assistance_types", res.AssistanceTypes,
		"households", res.Households,
		"entitlements", res.Entitlements,
		"skipped", res.Skipped)
	return res, nil
}

func (s *Seeder) applyHousehold(ctx context.Context, projectID uint, h Household, typeIDs map[string]uint, res *Result) error {
	members := make([]householdDTO.MemberRequest, 0, len(h.Members))
	for _, m := range h.Members {
		members = append(members, householdDTO.MemberRequest{
			FirstName:  m.FirstName,
			LastName:   m.LastName,
			Gender:     m.Gender,
			NationalID: m.NationalID,
			Phone:      m.Phone,
			IsHead:     m.IsHead,
			IsProxy:    m.IsProxy,
		})
	}

	created, err := s.households.Register(ctx, householdDTO.RegisterHouseholdRequest{
		ProjectID:          projectID,
		RegistrationNumber: h.RegistrationNumber,
		Address:            h.Address,
		Members:            members,
	})
	if errors.Is(err, household.ErrDuplicateRegistration) {
		res.Skipped++
		return nil
	}
	if err != nil {
		return err
	}
	res.Households++

	if h.Consent {
		if _, err := s.households.GiveConsent(ctx, created.ID); err != nil {
			return err
		}
	}

	for _, e := range h.Entitlements {
		typeID, ok := typeIDs[e.AssistanceType]
		if !ok {
			return fmt.Errorf("%w: %q", assistance.ErrAssistanceTypeNotFound, e.AssistanceType)
		}
		_, err := s.ledger.CreateEntitlement(ctx, entitlementDTO.CreateEntitlementRequest{
			HouseholdID:      created.ID,
			AssistanceTypeID: typeID,
			ProgrammeTotal:   e.ProgrammeTotal,
		})
		if errors.Is(err, entitlement.ErrDuplicateEntitlement) {
			res.Skipped++
			continue
		}
		if err != nil {
			return err
		}
		res.Entitlements++
	}
	return nil
}

// resolveProject returns project_id as given, or finds the described project
// by country and name, creating and activating it when absent.
func (s *Seeder) resolveProject(ctx context.Context, f *File, res *Result) (uint, error) {
	if f.Project == nil {
		return f.ProjectID, nil
	}

	country, err := project.ParseCountry(f.Project.Country)
	if err != nil {
		return 0, fmt.Errorf("project %q: %w", f.Project.Name, err)
	}
	existing, _, err := s.projects.List(ctx, project.ListFilter{CountryCode: country.String()})
	if err != nil {
		return 0, err
	}
	for _, p := range existing {
		if p.Name == f.Project.Name {
			res.Skipped++
			return p.ID, nil
		}
	}

	created, err := s.projects.Create(ctx, projectDTO.ProjectRequest{
		Name:        f.Project.Name,
		Description: f.Project.Description,
		CountryCode: country.String(),
		StartDate:   f.Project.StartDate,
		FinanceCode: f.Project.FinanceCode,
	})
	if err != nil {
		return 0, fmt.Errorf("project %q: %w", f.Project.Name, err)
	}
	if _, err := s.projects.Activate(ctx, created.ID); err != nil {
		return 0, fmt.Errorf("project %q: %w", f.Project.Name, err)
	}
	res.Projects++
	return created.ID, nil
}

func (s *Seeder) existingTypes(ctx context.Context, projectID uint) (map[string]uint, error) {
	list, err := s.assistance.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(list))
	for _, a := range list {
		ids[a.Name] = a.ID
	}
	return ids, nil
}
