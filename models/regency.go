package models

// acehRegencies are the kabupaten/kota offered by the poverty line forecast
// selector, in selector order.
var acehRegencies = []string{
	"Kabupaten Simeulue", "Kabupaten Aceh Singkil", "Kabupaten Aceh Selatan",
	"Kabupaten Aceh Tenggara", "Kabupaten Aceh Timur", "Kabupaten Aceh Tengah",
	"Kabupaten Aceh Barat", "Kabupaten Aceh Besar", "Kabupaten Pidie",
	"Kabupaten Bireuen", "Kabupaten Aceh Utara", "Kabupaten Aceh Barat Daya",
	"Kabupaten Gayo Lues", "Kabupaten Aceh Tamiang", "Kabupaten Nagan Raya",
	"Kabupaten Aceh Jaya", "Kabupaten Bener Meriah", "Kabupaten Pidie Jaya",
	"Kota Banda Aceh", "Kota Sabang", "Kota Langsa",
	"Kota Lhokseumawe", "Kota Subulussalam",
}

// AcehRegencies returns a copy of the regency selector list.
func AcehRegencies() []string {
	out := make([]string, len(acehRegencies))
	copy(out, acehRegencies)
	return out
}
