package constants

// NonItemKeywords is the blacklist used by the item validity filter: any line
// containing one of these substrings (case-insensitive) is receipt
// boilerplate, not a purchased item. It covers totals/taxes, payment terms,
// receipt metadata, column headers, address components, and Indonesian city
// names, plus the "subtota" OCR misreads with a trailing digit.
var NonItemKeywords = []string{
	"total", "subtotal", "sub total", "pajak", "tax", "service",
	"charge", "amount", "jumlah", "tunai", "cash", "card", "kartu",
	"debit", "credit", "kredit", "change", "kembalian", "kembali",
	"date", "time", "tanggal", "waktu", "receipt", "invoice",
	"customer", "pelanggan", "thank", "terima kasih", "sales",
	"queue", "antrian", "no.", "nomor", "table", "meja", "rcpt",
	"bill", "order", "cashier", "kasir", "pax", "guest", "phone",
	"telp", "address", "alamat", "jalan", "street", "kota", "city",
	"provinsi", "province", "kode pos", "postal code", "zip",
	"npwp", "tax id", "produk", "product", "item", "qty", "quantity",
	"harga", "price", "disc", "discount", "potongan", "ppn", "vat",
	"dpp", "pbj", "gedung", "building", "menara", "tower", "plaza",
	"mall", "kec", "kecamatan", "district", "kelurahan", "desa",
	"village", "rt", "rw", "blok", "block", "jl", "jln",
	"avenue", "lane", "road", "boulevard", "highway",
	"kabupaten", "regency",
	"indonesia", "jakarta", "bandung", "surabaya", "medan", "makassar",
	"semarang", "palembang", "tangerang", "depok", "bekasi", "batam",
	"pekanbaru", "bogor", "padang", "malang", "samarinda", "tasikmalaya",
	"pontianak", "banjarmasin", "balikpapan", "manado", "denpasar",
	"serang", "jambi", "bengkulu", "ambon", "palu", "mataram",
	"kupang", "jayapura", "ternate", "tanjung pinang", "pangkal pinang",
	"gorontalo", "mamuju", "kendari", "banda aceh", "tanjung selor",
	"manokwari", "sofifi", "nabire", "merauke", "sorong",
	"biak", "timika", "wamena", "fakfak", "serui", "tembagapura",
	"subtota1", "subtota2", "subtota3", "subtota4", "subtota5",
	"subtota6", "subtota7", "subtota8", "subtota9", "subtota0",
}

// NonItemPrefixes anchors patterns at the start of a lowercased line. These
// catch labels whose keyword form would be too aggressive as a substring
// match, plus OCR misreads seen in the wild ("scrp", "pb1rp", "edc").
var NonItemPrefixes = []string{
	`^rcpt`, `^receipt`, `^invoice`, `^bill`, `^order`,
	`^subtotal`, `^sub\s*total`, `^total`, `^pajak`, `^tax`,
	`^service`, `^charge`, `^amount`, `^jumlah`, `^tunai`,
	`^cash`, `^card`, `^kartu`, `^debit`, `^credit`, `^kredit`,
	`^change`, `^kembalian`, `^kembali`, `^date`, `^time`,
	`^tanggal`, `^waktu`, `^customer`, `^pelanggan`, `^thank`,
	`^terima\s*kasih`, `^sales`, `^queue`, `^antrian`, `^no\.`,
	`^nomor`, `^table`, `^meja`, `^produk`, `^product`,
	`^qty`, `^quantity`, `^harga`, `^price`, `^disc`, `^discount`,
	`^potongan`, `^ppn`, `^vat`, `^dpp`, `^pbj`, `^subtota\d`,
	`^kec\.`, `^kel\.`, `^jl\.`, `^jln\.`, `^rt\.`, `^rw\.`,
	`^blok`, `^gedung`, `^menara`, `^plaza`, `^mall`, `^edc`, `^bca`, `^scrp`, `^pb1rp`, `^sub`,
}

// HeaderKeywords mark the column-header row that ends a receipt's header
// region; the item listing starts after the first token containing one.
var HeaderKeywords = []string{"item", "description", "qty", "price", "amount", "jumlah"}

// FooterKeywords mark the start of the totals footer; the item listing ends
// at the first token containing one.
var FooterKeywords = []string{"subtotal", "sub total", "total", "pajak", "tax"}
