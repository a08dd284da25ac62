package types

// VersionTagSize is the size of the fixed version slot at the start of every file.
const VersionTagSize = 30

// Known version tags.
const (
	VersionGP1    = "FICHIER GUITARE PRO v1"
	VersionGP101  = "FICHIER GUITARE PRO v1.01"
	VersionGP102  = "FICHIER GUITARE PRO v1.02"
	VersionGP103  = "FICHIER GUITARE PRO v1.03"
	VersionGP104  = "FICHIER GUITARE PRO v1.04"
	VersionGP220  = "FICHIER GUITAR PRO v2.20"
	VersionGP221  = "FICHIER GUITAR PRO v2.21"
	VersionGP300  = "FICHIER GUITAR PRO v3.00"
	VersionGP400  = "FICHIER GUITAR PRO v4.00"
	VersionGP406  = "FICHIER GUITAR PRO v4.06"
	VersionGPL406 = "FICHIER GUITAR PRO L4.06"
)

// KnownVersions lists every tag the format has used, oldest first.
var KnownVersions = []string{
	VersionGP1,
	VersionGP101,
	VersionGP102,
	VersionGP103,
	VersionGP104,
	VersionGP220,
	VersionGP221,
	VersionGP300,
	VersionGP400,
	VersionGP406,
	VersionGPL406,
}
