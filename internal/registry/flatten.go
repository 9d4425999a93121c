package registry

import "strings"

// schemaSeparator precedes every dependency block in a flattened schema.
var schemaSeparator = "\n" + strings.Repeat("=", 80) + "\n"

// Flatten concatenates rec's definition with the definitions of the types it
// references, in the order they are listed in its description. Each
// dependency block is preceded by a separator line and a "<KIND>: pkg/Name"
// header. Repeated references are emitted each time they appear.
//
// References not present in the registry are skipped with a warning and
// returned in missing; Flatten itself never fails.
func (r *Registry) Flatten(rec *TypeRecord) (schema string, missing []string) {
	var b strings.Builder
	b.WriteString(rec.DefinitionText)

	for _, dep := range rec.Description.TypeDescriptionMsg.ReferencedTypeDescriptions {
		depRec, ok := r.Lookup(dep.TypeName)
		if !ok {
			r.obs.DependencyMissing()
			r.log.Warn().
				Str("dependency", dep.TypeName).
				Str("type", rec.FullName).
				Msgf("dependency %s of type %s not found in registry", dep.TypeName, rec.FullName)
			missing = append(missing, dep.TypeName)
			continue
		}

		b.WriteString(schemaSeparator)
		b.WriteString(depRec.Kind.String())
		b.WriteString(": ")
		b.WriteString(depRec.ShortTypeName())
		b.WriteByte('\n')
		b.WriteString(depRec.DefinitionText)
	}

	return b.String(), missing
}
