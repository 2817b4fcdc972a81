// Package domain models mass-shooting incident records and the summary
// statistics the dashboards are built from.
//
// # Data Sources
//
// Incident rows come from the Gun Violence Archive mass-shooting export
// (MassShootings.csv), enriched upstream with the containing state's FIPS
// code and population. County populations come from the USDA ERS
// population estimates (CountyPopulation.csv, column POP_ESTIMATE_2023),
// county boundaries from the Census TIGER cartographic files
// (Counties.geojson), and school incidents from the K-12 School Shooting
// Database (SchoolIncidents.csv).
//
// # Conventions
//
// FIPS codes:
//
//	State FIPS is a two-digit number (Texas = 48). County FIPS is the
//	five-digit state+county GEOID ("48453" = Travis County, TX). Both are
//	carried as integers because the us-10m TopoJSON used by the charts keys
//	its features by numeric id (48453, not "48453").
//
// Dates:
//
//	The archive writes "January 2, 2006". ISO dates and US slash dates are
//	also accepted. Anything else becomes the zero time and is dropped by
//	monthly grouping. See [ParseIncidentDate].
//
// Rates:
//
//	State rates are shootings per 1M habitants, county rates per 100K.
//	Every ratio whose denominator is zero is reported as 0.
//
// Missing states:
//
//	Montana, Wyoming and Vermont have no rows in the incident export. They
//	are still ranked and mapped, with zero shootings and the constant
//	populations in [MissingStates].
package domain
