package kumi

// Package kumi is a declarative data-mapping layer: a Mapping of named, typed
// Fields converts between an external representation (a nested, key-addressed
// payload) and an internal one (attribute-style data), applying per-field
// validation and coercion in both directions and aggregating every failure of
// a pass instead of stopping at the first.
//
// It provides:
//
// - Bidirectional passes via Marshal/Serialize, plus validate-only variants
// - A stable error model: *MappingError keyed by field source/name, with
//   *MappingFault distinguishing defective mappings from invalid data
// - Dotted source expansion ("user.company.name") into nested output
// - Batch ("many") runs with fully independent per-instance outcomes
// - Document Sources (JSON via goccy/go-json, YAML via yaml.v3) feeding
//   MarshalFrom/SerializeFrom
//
// Design policy:
// - Keep only public APIs in the root package; concrete field types live in
//   fields/, message catalogs in i18n/, the CLI in cmd/kumi.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	m := kumi.NewMapping(
//		fields.New("name", fields.String{}),
//		fields.New("id", fields.Integer{}),
//	)
//	out, err := kumi.Marshal(ctx, m, payload)
//	out, err = kumi.MarshalFrom(ctx, m, kumi.JSONBytes(body))
