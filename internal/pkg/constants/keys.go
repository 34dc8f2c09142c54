package constants

// Redis key formats
const (
	KeyStore      = "store:%s" // Format: store:{store_num}
	KeyZip        = "zip:%s"   // Format: zip:{postal_code}
	KeyRefineMemo = "memo:%s:%s"

	PatternStores = "store:*"
)

// Hash field names shared by the catalog and zip tables
const (
	FieldLatitude  = "lat"
	FieldLongitude = "long"
	FieldZip       = "zip"
)

// CSV grouping column names
const (
	ColumnStoreNum = "storeNum"
	ColumnZip      = "zip"
)
