package calendar

// Name tables. Arrays rather than slices so they cannot be appended to or
// resliced by callers.

var tithiNames = [15]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashti", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
}

var pakshaNames = [2]string{"Shukla", "Krishna"}

var vaaraNames = [7]string{
	"Ravivaara", "Somavaara", "Mangalavaara", "Budhavaara",
	"Guruvaara", "Shukravaara", "Shanivaara",
}

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashirsha", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshta", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

var yogaNames = [27]string{
	"Vishkambha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda",
	"Sukarma", "Dhriti", "Shula", "Ganda", "Vriddhi", "Dhruva", "Vyaghata",
	"Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyana", "Parigha",
	"Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra",
	"Vaidhriti",
}

var movableKaranaNames = [7]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
}

var ayanaNames = [2]string{"Uttarayana", "Dakshinayana"}

var rituNames = [6]string{
	"Vasanta", "Grishma", "Varsha", "Sharad", "Hemanta", "Shishira",
}

var masaNames = [12]string{
	"Chaitra", "Vaishakha", "Jyeshtha", "Ashadha", "Shravana", "Bhadrapada",
	"Ashvina", "Kartika", "Margashirsha", "Pausha", "Magha", "Phalguna",
}

// purnimaMasa maps the nakshatra of the Moon at full moon (index 1..27)
// to the month it names.
var purnimaMasa = [28]Masa{
	0,
	Ashvina, Ashvina, // Ashwini, Bharani
	Kartika, Kartika, // Krittika, Rohini
	Margashirsha, Margashirsha, // Mrigashirsha, Ardra
	Pausha, Pausha, // Punarvasu, Pushya
	Magha, Magha, // Ashlesha, Magha
	Phalguna, Phalguna, Phalguna, // Purva/Uttara Phalguni, Hasta
	Chaitra, Chaitra, // Chitra, Swati
	Vaishakha, Vaishakha, // Vishakha, Anuradha
	Jyeshtha, Jyeshtha, // Jyeshta, Mula
	Ashadha, Ashadha, // Purva/Uttara Ashadha
	Shravana, Shravana, // Shravana, Dhanishta
	Bhadrapada, Bhadrapada, Bhadrapada, // Shatabhisha, Purva/Uttara Bhadrapada
	Ashvina, // Revati
}
