package internal

// RawRecord is one row of the DANE extract as delivered by the loader:
// municipality names still carry the "(DEPARTMENT)" suffix and group rows
// may repeat within a municipality.
type RawRecord struct {
	Department      string
	RawMunicipality string
	GroupCode       int
	GroupName       string
	Population      int
}

// CanonicalRecord is one municipality×group row of the canonical dataset.
// At most one record exists per (MunicipalityKey, GroupCode) pair.
type CanonicalRecord struct {
	Department        string
	CleanMunicipality string
	MunicipalityKey   string
	GroupCode         int
	GroupName         string
	Population        int
}

// Selection restricts a dataset along any combination of dimensions. An
// empty slice leaves that dimension unrestricted. String dimensions match
// case-insensitively.
type Selection struct {
	GroupCodes       []int
	MunicipalityKeys []string
	Departments      []string
}

// GroupRank is one entry of a municipality ranking: population descending,
// group code ascending on ties.
type GroupRank struct {
	GroupCode  int `json:"groupCode"`
	Population int `json:"population"`
}

type DiversityIndices struct {
	HHI     float64 `json:"hhi"`
	Simpson float64 `json:"simpson"`
	Shannon float64 `json:"shannon"`
}

type MunicipalityIndicator struct {
	MunicipalityKey   string           `json:"municipalityKey"`
	Department        string           `json:"department"`
	CleanMunicipality string           `json:"municipality"`
	TotalPopulation   int              `json:"totalPopulation"`
	GroupCount        int              `json:"groupCount"`
	TopGroups         []GroupRank      `json:"topGroups"`
	Diversity         DiversityIndices `json:"diversity"`
}

type DepartmentIndicator struct {
	Department        string `json:"department"`
	TotalPopulation   int    `json:"totalPopulation"`
	GroupCount        int    `json:"groupCount"`
	MunicipalityCount int    `json:"municipalityCount"`
}

type Aggregation struct {
	Municipalities []MunicipalityIndicator `json:"municipalities"`
	Departments    []DepartmentIndicator   `json:"departments"`
}

// GroupShare is one row of the by-group table: a group's population within
// the selection and its share of the selection total.
type GroupShare struct {
	GroupCode  int     `json:"groupCode"`
	GroupName  string  `json:"groupName"`
	Population int     `json:"population"`
	Share      float64 `json:"share"`
}

type PivotCell struct {
	MunicipalityKey string `json:"municipalityKey"`
	GroupCode       int    `json:"groupCode"`
	Population      int    `json:"population"`
}

// DatasetOptions lists the selectable values present in a dataset, every
// dimension sorted ascending.
type DatasetOptions struct {
	Groups         []GroupOption `json:"groups"`
	Municipalities []string      `json:"municipalities"`
	Departments    []string      `json:"departments"`
}

type GroupOption struct {
	GroupCode int    `json:"groupCode"`
	GroupName string `json:"groupName"`
}
