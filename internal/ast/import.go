package ast

// Import is one import or re-export statement recognized by the import
// extractor. Renamed imports (`X as Y`) keep the original exported name
// in Names.
type Import struct {
	Names          []string
	ModulePath     string
	IsDefault      bool
	IsNamespace    bool
	NamespaceAlias string
}
