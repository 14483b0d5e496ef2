package policy

import (
	"fmt"
	"strings"

	"cosmetic-platform-dataset/internal/domain/catalog"
)

// Statements returns the policy script for specs as individual statements.
// Every CREATE POLICY is preceded by a DROP POLICY IF EXISTS so the script
// can be re-run.
func Statements(specs []catalog.TableSpec) []string {
	var stmts []string
	for _, t := range specs {
		table := "public." + t.Name
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY;", table))
		for _, r := range rules[t.Access] {
			name := policyName(t, r)
			stmts = append(stmts, fmt.Sprintf("DROP POLICY IF EXISTS %q ON %s;", name, table))

			var b strings.Builder
			fmt.Fprintf(&b, "CREATE POLICY %q ON %s FOR %s", name, table, r.action)
			if r.using != predNone {
				fmt.Fprintf(&b, " USING (%s)", predicateSQL(t, r.using))
			}
			if r.check != predNone {
				fmt.Fprintf(&b, " WITH CHECK (%s)", predicateSQL(t, r.check))
			}
			b.WriteString(";")
			stmts = append(stmts, b.String())
		}
	}
	return stmts
}

// Render returns the full policy script with a comment per table
func Render(specs []catalog.TableSpec) string {
	var b strings.Builder
	b.WriteString("-- Row level security policies\n")
	b.WriteString("-- auth.uid() is the id of the authenticated requester; service_role bypasses these policies.\n")
	for _, t := range specs {
		fmt.Fprintf(&b, "\n-- %s (%s)\n", t.Name, t.Access)
		if t.Access == catalog.AccessRestricted {
			b.WriteString("-- denied to every request role until an ownership check is defined\n")
		}
		for _, stmt := range Statements([]catalog.TableSpec{t}) {
			b.WriteString(stmt)
			b.WriteString("\n")
		}
	}
	return b.String()
}
