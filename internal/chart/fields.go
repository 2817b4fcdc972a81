package chart

// Field names as encoded by the domain aggregates' JSON tags.
const (
	fieldState          = "State"
	fieldFIPS           = "FIPS"
	fieldShootings      = "Total Shootings"
	fieldStateRate      = "Shootings per 1M Habitants"
	fieldPctInjured     = "% of Suspects Injured"
	fieldPctKilled      = "% of Suspects Killed"
	fieldCountyFIPS     = "County FIPS"
	fieldCounty         = "County"
	fieldCountyRate     = "Shootings per 100K habitants"
	fieldShootingRatio  = "Ratio Mass Shootings"
	fieldSchoolRatio    = "Ratio School Incidents"
	fieldYearMonth      = "Year_Month"
	fieldCount          = "Count"
	fieldSeriesMonth    = "year_month"
	fieldSeriesCount    = "count"
	fieldSeriesType     = "type"
	fieldMean           = "mean_value"
	fieldLatitude       = "Latitude"
	fieldLongitude      = "Longitude"
	monthAxisFormat     = "%b-%Y"
	monthAxisLabelAngle = 45
)
