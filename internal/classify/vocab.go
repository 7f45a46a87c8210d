// Package classify assigns the ownership category and the audit risk flag
// to extracted transaction records.
package classify

import "strings"

// Keyword vocabularies for the ownership classifier. Matching is substring
// based on lower-cased text, so entries like "cv " keep their trailing
// space to avoid matching inside words.
var companyKeywords = []string{
	"atk", "kantor", "office", "printer", "komputer", "laptop",
	"kamus", "buku", "cetak", "plakat", "spanduk", "banner", "percetakan",
	"grafika", "advertising", "kbbi", "peribahasa", "idiom",
	"jaspro", "jasapro", "jasa profesional", "konsultan", "notaris",
	"dpr", "badan bahasa", "korpri", "juknis", "kuliah umum", "kul umum",
	"hari guru", "hut", "seminar", "workshop",
	"garuda", "tiket", "palu", "aceh", "jateng", "flight",
	"apar", "cv ", "pt ", "ud ", "toko", "supplier",
	"honor", "gaji", "pulang", "perjalanan", "dinas",
	"signage", "kebersihan", "catering", "katering",
	"pemerintah", "ditjen", "perbendaharaan", "depkeu",
	"virtual account", "pusbanglin", "monami",
}

var privateKeywords = []string{
	"traveloka", "agoda", "hotel", "liburan", "vacation",
	"malaysia", "pribadi", "personal", "uh ",
	"netflix", "spotify", "youtube", "game",
	"makan", "resto", "cafe", "belanja",
	"jajan", "jemputan", "nisan", "rumput",
	"gokana", "burger king", "mcd", "kfc", "starbucks", "coffee",
	"transmart", "superindo", "alfamart", "indomaret",
	"holland bakery", "breadtalk", "jco", "es teh",
	"grab", "gojek", "warung", "nasi goreng",
}

var companyRecipients = []string{
	"cv ", "pt ", "ud ", "toko", "grafika", "advertising",
	"premier", "perkasa", "indonesia tbk", "astra",
	"pemerintah", "ditjen", "perbendaharaan", "depkeu",
	"pusbanglin", "badan bahasa", "monami",
}

var privateRecipients = []string{
	"traveloka", "agoda", "shopee", "tokopedia", "lazada",
	"gopay", "ovo", "dana",
	"alfamart", "indomaret", "grab", "gojek", "warung",
	"mcd", "kfc", "starbucks", "gokana",
}

// Audit rule vocabularies.
var (
	personalNames = []string{"indah", "rosalia", "desya"}

	businessContextKeywords = []string{"kantor", "office", "meeting", "client"}

	businessTravelKeywords = []string{
		"perjadin", "skbd", "manca", "dinas", "pusbang", "pusbanglin",
		"narsum", "seminar", "workshop", "rapat", "meeting",
	}

	officeSupplyKeywords = []string{
		"atk", "kamus", "kbbi", "spanduk", "plakat", "banner", "cetak",
		"percetakan", "signage", "alat kebersihan", "tong sampah",
	}

	professionalKeywords = []string{"jaspro", "honor", "konsultan", "notaris"}

	governmentKeywords = []string{"dpr", "badan bahasa", "korpri", "juknis"}

	governmentTransferKeywords = []string{"pemerintah", "ditjen"}

	qrisPersonalPlaces = []string{
		"gokana", "burger", "mcd", "kfc", "starbucks", "bakery",
		"coffee", "resto", "cafe", "warung", "nasi goreng", "es teh",
	}

	cateringKeywords = []string{"katering", "catering", "nasi box"}

	travelBookingKeywords = []string{"tiket", "hotel", "pesawat", "flight"}

	travelDestinationKeywords = []string{
		"dinas", "skbd", "pusbang", "narsum", "manca",
		"papua", "bengkulu", "medan", "bali", "jogja",
		"surabaya", "aceh", "riau", "jambi",
	}

	personalTripKeywords = []string{"pribadi", "liburan", "vacation"}

	creditCardContextKeywords = []string{"kantor", "office", "bisnis", "business"}

	feeShapeMarkers = []string{"fee charge", "admin fee", "biaya admin", "debit card charges"}
)

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
