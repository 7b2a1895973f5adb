package tracking

// carrierDisplayNames overrides upstream carrier names with the names users
// know. Read-only after init.
var carrierDisplayNames = map[string]string{
	"cn.cainiao.global":        "카이니아오 글로벌",
	"de.dhl":                   "DHL",
	"jp.sagawa":                "사가와",
	"jp.yamato":                "야마토",
	"kr.actcore.ocean-inbound": "ACT&CORE (해상 수입)",
	"kr.cjlogistics":           "CJ대한통운",
	"kr.coupangls":             "쿠팡로지스틱스서비스",
	"kr.cupost":                "CU편의점택배",
	"kr.chunilps":              "천일택배",
	"kr.cvsnet":                "GS Postbox",
	"kr.cway":                  "우리익스프레스(CWAY)",
	"kr.daesin":                "대신택배",
	"kr.epantos":               "LX판토스",
	"kr.epost":                 "우체국택배",
	"kr.epost.ems":             "우체국 EMS",
	"kr.goodstoluck":           "굿스트럭",
	"kr.homepick":              "홈픽",
	"kr.hanjin":                "한진택배",
	"kr.honamlogis":            "호남로지스",
	"kr.ilyanglogis":           "일양로지스",
}

// DisplayName returns the display name for a carrier id: the override when
// one exists, else fallback, else the id itself.
func DisplayName(id, fallback string) string {
	if name, ok := carrierDisplayNames[id]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return id
}
