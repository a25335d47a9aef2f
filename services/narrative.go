package services

// Narrative blocks shown under the charts. They are trusted HTML.
const (
	narrativePopulationTrend = `<p class="narrative">Selama periode 2012 hingga 2021, jumlah penduduk miskin di Aceh berfluktuasi.
Jumlah tertinggi tercatat pada tahun 2012, sekitar 880,52 ribu jiwa, lalu menurun secara bertahap hingga titik
terendah pada tahun 2020 dengan sekitar 814,93 ribu jiwa. Pada tahun 2021 jumlahnya kembali naik menjadi sekitar
834,25 ribu jiwa.</p>
<p class="narrative">Penurunan yang konsisten dari tahun 2013 hingga 2020 menunjukkan adanya perbaikan ekonomi atau
efektivitas program pengentasan kemiskinan. Kenaikan pada tahun 2021 kemungkinan terkait dengan pandemi COVID-19
atau kondisi ekonomi yang memburuk.</p>`

	narrativePopulationRegency = `<p class="narrative">Grafik ini membandingkan jumlah penduduk miskin per kabupaten/kota.
Urutan kabupaten/kota ditentukan oleh total jumlah penduduk miskin selama periode data, sehingga wilayah dengan beban
kemiskinan terbesar tampil lebih dahulu.</p>`

	narrativePopulationForecast = `<p class="narrative">Prediksi jumlah penduduk miskin tahun 2022 hingga 2026 dihitung dengan
regresi linear atas total jumlah penduduk miskin per tahun. Persentase penduduk miskin diprediksi dengan cara yang
sama dan ditampilkan pada keterangan setiap titik. Prediksi ini hanya melanjutkan tren historis dan tidak
memperhitungkan perubahan kebijakan atau guncangan ekonomi.</p>`

	narrativeAreaShare = `<ul class="narrative">
<li><b>Daerah Perdesaan:</b> secara konsisten, persentase penduduk miskin di perdesaan lebih tinggi dibandingkan
perkotaan selama periode 2001-2022. Segmen perdesaan yang lebih besar menandakan persentase yang lebih tinggi.</li>
<li><b>Daerah Perkotaan:</b> persentase penduduk miskin di perkotaan juga menurun, pada tingkat yang lebih rendah
dibandingkan perdesaan. Kontribusinya signifikan namun tetap lebih kecil.</li>
</ul>`

	narrativeIndexTrend = `<p class="narrative">Visualisasi ini menampilkan perkembangan Indeks Kedalaman (P1) dan Indeks
Keparahan Kemiskinan (P2) selama periode data, dihitung sebagai rata-rata seluruh kabupaten/kota setiap tahun.
Pada awal periode indeks berada pada tingkat yang tinggi, lalu menurun cukup konsisten sebelum kembali
berfluktuasi. Keterangan setiap titik menunjukkan perubahan persentase dibanding tahun sebelumnya.</p>
<p class="narrative">Kenaikan dan penurunan indeks mencerminkan dinamika kemiskinan yang dipengaruhi pertumbuhan
ekonomi, kebijakan sosial, serta kejadian global. Garis putus-putus memisahkan data aktual dari hasil prediksi.</p>`

	narrativeIndexRegency = `<p class="narrative">Kabupaten/kota diurutkan berdasarkan rata-rata Indeks Keparahan
Kemiskinan. Garis menunjukkan Indeks Kedalaman tiap wilayah, sedangkan Indeks Keparahan ditampilkan pada
keterangan setiap titik.</p>`

	narrativeIndexForecast = `<p class="narrative">Data dikonversi menjadi numerik, dikelompokkan per tahun, dan dihitung
rata-ratanya. Dua model regresi linear dibangun dengan tahun sebagai variabel independen: satu untuk indeks
kedalaman dan satu untuk indeks keparahan kemiskinan. Model tersebut digunakan untuk memprediksi tahun
2024 hingga 2028.</p>`

	narrativePovertyLineYear = `<p class="narrative">Garis kemiskinan menggambarkan batas minimum pendapatan atau konsumsi yang
diperlukan untuk memenuhi kebutuhan dasar di setiap kabupaten/kota. Visualisasi ini memperlihatkan variasi garis
kemiskinan pada tahun terpilih dan membantu mengidentifikasi wilayah yang membutuhkan perhatian khusus.</p>`

	narrativePovertyLineForecast = `<p class="narrative">Untuk setiap kabupaten/kota terpilih, model regresi linear dibangun dari
data historis garis kemiskinan, lalu digunakan untuk memprediksi nilai tahun 2024 hingga 2028. Hasilnya membantu
pembuat kebijakan mengidentifikasi daerah yang mungkin memerlukan intervensi khusus dan merencanakan alokasi
sumber daya yang lebih efisien.</p>`
)

// Messages shown in place of, or next to, a chart.
const (
	promptSelectRegency = "Silakan pilih setidaknya satu kabupaten/kota untuk melihat hasil prediksi."
	warnNoRegencyData   = "Tidak ada data untuk %s"
)
