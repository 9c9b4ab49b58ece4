package report

// Built-in report descriptors. These are data: adding a report type is a
// matter of adding a function like the two below and registering it.

func etConfig() ReportConfig {
	return ReportConfig{
		ReportType: TypeET,
		Title:      "ELEKTRİK TESİSATI TOPRAKLAMA ÖLÇÜM RAPORU",
		Calculate:  etCalculate,
		Sections: []SectionSpec{
			{
				Type:  SectionInfo,
				Title: "Ölçüm Bilgileri",
				Fields: []Field{
					{Key: "olcumCihazi", Label: "Ölçüm Cihazı"},
					{Key: "cihazSeriNo", Label: "Cihaz Seri No"},
					{Key: "kalibrasyonNo", Label: "Kalibrasyon Sertifika No"},
					{Key: "kalibrasyonTarihi", Label: "Kalibrasyon Tarihi"},
					{Key: "sebekeTipi", Label: "Şebeke Tipi"},
					{Key: "topraklamaTipi", Label: "Topraklama Tipi"},
				},
			},
			{
				Type:    SectionMeasurements,
				Title:   "Ölçüm Sonuçları",
				DataKey: keyMeasurementPoints,
				Columns: []Column{
					{Key: "sira", Label: "No", Width: 8},
					{Key: "nokta", Label: "Ölçüm Noktası", Width: 34},
					{Key: "in", Label: "In (A)", Width: 12},
					{Key: "egri", Label: "Eğri", Width: 10},
					{Key: "ia", Label: "Ia (A)", Width: 14},
					{Key: "zs", Label: "Zs (Ω)", Width: 14},
					{Key: "zx", Label: "Zx (Ω)", Width: 14},
					{Key: "ik1", Label: "Ik1 (A)", Width: 14},
					{Key: "rcd", Label: "RCD (mA)", Width: 15},
					{Key: "tdelta", Label: "TΔ (ms)", Width: 15},
					{Key: "sonuc", Label: "Sonuç", Width: 20},
				},
			},
			{
				Type:    SectionDefects,
				Title:   "Tespit Edilen Eksiklikler",
				DataKey: "eksiklikler",
			},
			{
				Type:  SectionResult,
				Title: "Genel Değerlendirme",
			},
			{
				Type:  SectionNotes,
				Title: "Açıklamalar",
				Items: []string{
					"Ölçümler TS HD 60364-4-41 ve Elektrik Tesislerinde Topraklamalar Yönetmeliği esas alınarak yapılmıştır.",
					"Zs değerleri koruma cihazının açma akımına göre hesaplanan sınır empedans değerleridir.",
					"Bu rapor yalnızca ölçüm tarihindeki tesisat durumunu yansıtır.",
					"Periyodik kontrol süresi, aksi belirtilmedikçe bir yıldır.",
				},
			},
		},
	}
}

func mekanikConfig() ReportConfig {
	return ReportConfig{
		ReportType: TypeMekanik,
		Title:      "MEKANİK TESİSAT PERİYODİK KONTROL RAPORU",
		// No calculation: the checklist verdict is a human judgment
		// entered on the form, not a derived aggregation.
		Sections: []SectionSpec{
			{
				Type:  SectionInfo,
				Title: "Ekipman Bilgileri",
				Fields: []Field{
					{Key: "ekipmanAdi", Label: "Ekipman Adı"},
					{Key: "markaModel", Label: "Marka / Model"},
					{Key: "seriNo", Label: "Seri No"},
					{Key: "imalatYili", Label: "İmalat Yılı"},
					{Key: "kapasite", Label: "Kapasite"},
					{Key: "kullanimYeri", Label: "Kullanım Yeri"},
				},
			},
			{
				Type:  SectionChecklist,
				Title: "Kontrol Listesi",
				Fields: []Field{
					{Key: "genelGorunum", Label: "Genel görünüm, temizlik ve korozyon durumu"},
					{Key: "etiketKontrol", Label: "Etiket ve işaretlemelerin mevcudiyeti"},
					{Key: "baglantiElemanlari", Label: "Bağlantı elemanlarının sıkılığı"},
					{Key: "hareketliAksam", Label: "Hareketli aksamın koruyucuları"},
					{Key: "emniyetVentili", Label: "Emniyet ventili / sınır kesici çalışması"},
					{Key: "kacakKontrol", Label: "Kaçak ve sızdırmazlık kontrolü"},
					{Key: "govdeKontrol", Label: "Gövde ve taşıyıcı yapı bütünlüğü"},
					{Key: "calismaTesti", Label: "Yük altında çalışma testi"},
				},
			},
			{
				Type:    SectionDefects,
				Title:   "Tespit Edilen Eksiklikler",
				DataKey: "eksiklikler",
			},
			{
				Type:  SectionResult,
				Title: "Genel Değerlendirme",
			},
			{
				Type:  SectionNotes,
				Title: "Açıklamalar",
				Items: []string{
					"Kontroller İş Ekipmanlarının Kullanımında Sağlık ve Güvenlik Şartları Yönetmeliği kapsamında yapılmıştır.",
					"Eksiklik tespit edilen ekipman, eksiklikler giderilmeden kullanılmamalıdır.",
					"Bu rapor yalnızca kontrol tarihindeki ekipman durumunu yansıtır.",
				},
			},
		},
	}
}
