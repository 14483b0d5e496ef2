package catalog

import (
	"errors"
	"fmt"
	"sort"

	"cosmetic-platform-dataset/internal/domain/entity"
)

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrDependencyLoop = errors.New("table references form a cycle")
)

// AccessClass selects which row-level-security predicates guard a table
type AccessClass string

const (
	// AccessReference tables are world-readable and written only by service_role
	AccessReference AccessClass = "reference"
	// AccessUserOwned rows are visible to and writable by their owner only
	AccessUserOwned AccessClass = "user_owned"
	// AccessCommunity rows are world-readable, insertable by any signed-in
	// user and updatable by their author
	AccessCommunity AccessClass = "community"
	// AccessRestricted tables deny every request role until an ownership
	// check is designed for them
	AccessRestricted AccessClass = "restricted"
)

// Reference is an integer or uuid column pointing at the id of Parent.
// The schema does not enforce it; integrity checks do.
type Reference struct {
	Column   string `json:"column"`
	Parent   string `json:"parent"`
	Nullable bool   `json:"nullable"`
}

// TableSpec describes one table of the dataset
type TableSpec struct {
	Name       string
	New        func() any
	Serial     bool
	Owner      string
	Access     AccessClass
	References []Reference
}

// Self reports whether ref points back at its own table
func (t TableSpec) Self(ref Reference) bool {
	return ref.Parent == t.Name
}

func ref(column, parent string) Reference {
	return Reference{Column: column, Parent: parent}
}

func nullableRef(column, parent string) Reference {
	return Reference{Column: column, Parent: parent, Nullable: true}
}

// tables is listed in the runbook's import order; ImportOrder only moves a
// table later when one of its parents is declared after it.
var tables = []TableSpec{
	{Name: "users", New: func() any { return &entity.User{} }, Owner: "id", Access: AccessUserOwned},
	{Name: "body_parts", New: func() any { return &entity.BodyPart{} }, Serial: true, Access: AccessReference},
	{Name: "categories", New: func() any { return &entity.Category{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("body_part_id", "body_parts")}},
	{Name: "procedures", New: func() any { return &entity.Procedure{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("category_id", "categories"), ref("body_part_id", "body_parts")}},
	{Name: "doctors", New: func() any { return &entity.Doctor{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("user_id", "users")}},
	{Name: "doctor_procedures", New: func() any { return &entity.DoctorProcedure{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("doctor_id", "doctors"), ref("procedure_id", "procedures")}},
	{Name: "reviews", New: func() any { return &entity.Review{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("doctor_id", "doctors"), nullableRef("procedure_id", "procedures"), ref("user_id", "users")}},
	{Name: "banners", New: func() any { return &entity.Banner{} }, Serial: true, Access: AccessReference},
	{Name: "banner_slides", New: func() any { return &entity.BannerSlide{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("banner_id", "banners")}},
	{Name: "community", New: func() any { return &entity.Community{} }, Serial: true, Owner: "user_id", Access: AccessCommunity,
		References: []Reference{ref("user_id", "users"), nullableRef("procedure_id", "procedures"), nullableRef("category_id", "categories")}},
	{Name: "community_replies", New: func() any { return &entity.CommunityReply{} }, Serial: true, Owner: "user_id", Access: AccessCommunity,
		References: []Reference{ref("community_id", "community"), nullableRef("parent_reply_id", "community_replies"), ref("user_id", "users")}},
	{Name: "community_votes", New: func() any { return &entity.CommunityVote{} }, Serial: true, Owner: "user_id", Access: AccessCommunity,
		References: []Reference{ref("community_id", "community"), ref("user_id", "users")}},
	{Name: "community_tags", New: func() any { return &entity.CommunityTag{} }, Serial: true, Access: AccessReference},
	{Name: "community_post_tags", New: func() any { return &entity.CommunityPostTag{} }, Serial: true, Access: AccessReference,
		References: []Reference{ref("community_id", "community"), ref("tag_id", "community_tags")}},
	{Name: "community_moderation", New: func() any { return &entity.CommunityModeration{} }, Serial: true, Access: AccessRestricted,
		References: []Reference{ref("community_id", "community"), ref("moderator_id", "users")}},
	{Name: "user_preferences", New: func() any { return &entity.UserPreference{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("user_id", "users")}},
	{Name: "notifications", New: func() any { return &entity.Notification{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("user_id", "users")}},
	{Name: "favorites", New: func() any { return &entity.Favorite{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("user_id", "users"), ref("procedure_id", "procedures"), nullableRef("doctor_id", "doctors")}},
	{Name: "appointments", New: func() any { return &entity.Appointment{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("user_id", "users"), ref("doctor_id", "doctors"), ref("procedure_id", "procedures")}},
	{Name: "messages", New: func() any { return &entity.Message{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("user_id", "users"), ref("recipient_id", "users")}},
	{Name: "face_scan_analyses", New: func() any { return &entity.FaceScanAnalysis{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("user_id", "users")}},
	{Name: "face_scan_recommendations", New: func() any { return &entity.FaceScanRecommendation{} }, Serial: true, Owner: "user_id", Access: AccessUserOwned,
		References: []Reference{ref("analysis_id", "face_scan_analyses"), ref("user_id", "users"), ref("procedure_id", "procedures")}},
	{Name: "clinics", New: func() any { return &entity.Clinic{} }, Serial: true, Access: AccessRestricted},
	{Name: "clinic_doctors", New: func() any { return &entity.ClinicDoctor{} }, Serial: true, Access: AccessRestricted,
		References: []Reference{ref("clinic_id", "clinics"), ref("doctor_id", "doctors")}},
	{Name: "leads", New: func() any { return &entity.Lead{} }, Serial: true, Access: AccessRestricted,
		References: []Reference{nullableRef("user_id", "users"), ref("clinic_id", "clinics"), ref("procedure_id", "procedures")}},
	{Name: "invoices", New: func() any { return &entity.Invoice{} }, Serial: true, Access: AccessRestricted,
		References: []Reference{ref("clinic_id", "clinics"), nullableRef("lead_id", "leads")}},
	{Name: "payments", New: func() any { return &entity.Payment{} }, Serial: true, Access: AccessRestricted,
		References: []Reference{ref("invoice_id", "invoices")}},
}

// All returns every table in declaration order
func All() []TableSpec {
	out := make([]TableSpec, len(tables))
	copy(out, tables)
	return out
}

// Lookup finds a table by name
func Lookup(name string) (TableSpec, error) {
	for _, t := range tables {
		if t.Name == name {
			return t, nil
		}
	}
	return TableSpec{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
}

// Models returns a fresh entity for every table, in import order, for AutoMigrate
func Models() []any {
	order, err := ImportOrder()
	if err != nil {
		order = All()
	}
	models := make([]any, len(order))
	for i, t := range order {
		models[i] = t.New()
	}
	return models
}

// ImportOrder sorts the catalog so that every table comes after the tables
// it references.
func ImportOrder() ([]TableSpec, error) {
	return Order(tables)
}

// Order topologically sorts specs by their references. Self references are
// ignored and ties keep the input order.
func Order(specs []TableSpec) ([]TableSpec, error) {
	index := make(map[string]int, len(specs))
	for i, t := range specs {
		index[t.Name] = i
	}

	pending := make([]int, len(specs))
	children := make(map[string][]int)
	for i, t := range specs {
		seen := map[string]bool{}
		for _, r := range t.References {
			if t.Self(r) || seen[r.Parent] {
				continue
			}
			if _, ok := index[r.Parent]; !ok {
				return nil, fmt.Errorf("%w: %s.%s references %s", ErrTableNotFound, t.Name, r.Column, r.Parent)
			}
			seen[r.Parent] = true
			pending[i]++
			children[r.Parent] = append(children[r.Parent], i)
		}
	}

	var ready []int
	for i := range specs {
		if pending[i] == 0 {
			ready = append(ready, i)
		}
	}

	ordered := make([]TableSpec, 0, len(specs))
	for len(ready) > 0 {
		sort.Ints(ready)
		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, specs[next])
		for _, child := range children[specs[next].Name] {
			pending[child]--
			if pending[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	if len(ordered) != len(specs) {
		return nil, ErrDependencyLoop
	}
	return ordered, nil
}
