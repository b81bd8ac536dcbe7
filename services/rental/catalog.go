package rental

import "voyago/models"

// rentalLocations is the static directory of predefined pickup/dropoff
// points. The dates step only checks that a location was entered; free-text
// locations are accepted as well, so this list is informational.
var rentalLocations = []models.RentalLocation{
	{ID: "ams-schiphol", Name: "Amsterdam Schiphol Airport", Address: "Evert van de Beekstraat 202, Schiphol"},
	{ID: "ams-central", Name: "Amsterdam Central Station", Address: "Stationsplein 1, Amsterdam"},
	{ID: "rtm-airport", Name: "Rotterdam The Hague Airport", Address: "Rotterdam Airportplein 60, Rotterdam"},
	{ID: "ber-brandenburg", Name: "Berlin Brandenburg Airport", Address: "Melli-Beese-Ring 1, Schönefeld"},
	{ID: "ber-hbf", Name: "Berlin Hauptbahnhof", Address: "Europaplatz 1, Berlin"},
	{ID: "par-cdg", Name: "Paris Charles de Gaulle Airport", Address: "95700 Roissy-en-France"},
	{ID: "par-gare-nord", Name: "Paris Gare du Nord", Address: "18 Rue de Dunkerque, Paris"},
	{ID: "ist-airport", Name: "Istanbul Airport", Address: "Tayakadın, Terminal Caddesi No:1, Arnavutköy"},
	{ID: "ist-sabiha", Name: "Sabiha Gökçen Airport", Address: "Sanayi, Pendik, Istanbul"},
	{ID: "ayt-airport", Name: "Antalya Airport", Address: "Yeşilköy, Antalya"},
}

// Locations returns the predefined pickup/dropoff location directory.
func (svc *DefaultSessionService) Locations() []models.RentalLocation {
	out := make([]models.RentalLocation, len(rentalLocations))
	copy(out, rentalLocations)
	return out
}
