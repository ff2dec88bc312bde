// seed-sample-reports inserts the canned LSITC sample reports (HX, CM, EX)
// into the JSON store. Safe to rerun: reports are upserted by id.
//
// Usage (from backend directory):
//   DB_PATH=data/db.json go run ./cmd/seed-sample-reports
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"bitbucket.org/intheforest/reports_backend/config"
	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/store"
)

func main() {
	ctx := context.Background()
	logger := config.GetLogger()

	db, err := store.Open(config.DataFilePath(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}

	for _, report := range []*models.Report{hxReport(), cmReport(), exReport()} {
		if _, err := db.Upsert(ctx, report); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed %s: %v\n", report.Id, err)
			os.Exit(1)
		}
		fmt.Printf("seeded %s\n", report.Id)
	}

	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush store: %v\n", err)
		os.Exit(1)
	}
}

func lsitcCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:      "LS ITC",
		Support:   "(주) 인더포레스트",
		Inspector: "김진수",
		Date:      "2025년 12월 15일",
		Phone:     "010-8766-2024",
		Type:      "■ 월\n□ 분기\n□ 특별",
		Note:      "",
	}
}

func hxReport() *models.Report {
	return &models.Report{
		Id:        "hx-report-lsitc",
		Title:     "Trellix HX 정기점검 2025년 12월 보고서",
		Inspector: "김진수 (인더포레스트)",
		Group:     "LSITC",
		Type:      "HX",
		CustomInfo: &models.CustomReportInfo{
			Customer: lsitcCustomer(),
			System: models.OneOrMany[models.SystemInfo]{{
				Product:   "Trellix HX",
				Equipment: "LS-HX1",
				Version:   "10.0.2.1007339",
				Customer:  "LS ITC",
				Usage:     "Endpoint Security Protection System",
			}},
			License: models.OneOrMany[models.LicenseInfo]{{
				Appliance: "HX4502",
				Serial:    "FZ2022QA6PF",
				Id:        "AC1F6BD75160",
				EndDate:   "2026-02-28",
				Features:  []string{"FIREEYE_SUPPORT", "HX_ADVANCED", "CONTENT_UPDATES", "FIREEYE_APPLIANCE"},
			}},
			Summary: models.SummaryInfo{
				Result: "[점검 결과]\n■ 아래 2건의 오류 해결을 위해 HX 장비 재부팅 작업 예정 (작업 일시 : 12/16(화) 18:00 ~ 20:00)\n  - 127.0.0.1:8080 ECONNREFUSED error is still occurring. 오류\n  - WebUI 콘솔의 Host Management 메뉴에서 자산 정보 확인 안되는 문제\n■ 신규 Software Version릴리즈 (Ver 10.0.5)",
				Note:   "[비고]\n※ Malware 이벤트 발생 및 격리 건 모니터링 요망",
			},
		},
		Sections: []models.Section{
			{
				Id:        uuid.NewString(),
				Title:     "하드웨어 상태 점검",
				SortOrder: 1,
				Items: []models.InspectionItem{
					item("전원 상태", "전원 공급 장치와 이중화 상태 정상 여부 확인\n(CLI - show system hardware-status power-supply)", "Overall power status: Good", 1),
					item("FAN 상태", "전체 시스템 FAN 정상 동작 여부 확인\n(CLI - show system hardware-status fan)", "Overall fan health: healthySystem\n개별 FAN 상태:\n- Fan 1: 8200 RPM (Ok)\n- Fan 2: 7900 RPM (Ok)\n- Fan 3: 8300 RPM (Ok)", 2),
					item("장비 온도 상태", "시스템 내부 온도 적정 여부 확인\n(CLI - show system hardware status temperature)", "System Temperature: 32°C (범위: 0-80°C, 상태: Good)", 3),
					item("Disk 상태 (RAID 포함)", "디스크 인식 여부 및 RAID 상태 확인\n(CLI - show system hardware status raid)", "Overall raid status: Good\n디스크 상태:\n- Disk 0: Online\n- Disk 1: Online", 4),
				},
			},
			{
				Id:        uuid.NewString(),
				Title:     "시스템 버전 점검 (서버)",
				SortOrder: 2,
				Items: []models.InspectionItem{
					item("Security Content", "시스템 주요 구성요소의 버전 업데이트 정상 여부 확인", "Security Content Version: 921.102", 1),
					item("FEOS Version", "시스템 주요 구성요소의 버전 업데이트 정상 여부 확인", "FEOS Version: 10.0.2.1007339", 2),
					item("IPMI Version", "시스템 주요 구성요소의 버전 업데이트 정상 여부 확인", "3.11", 3),
				},
			},
			{
				Id:        uuid.NewString(),
				Title:     "파일 시스템 상태 점검",
				SortOrder: 3,
				Items: []models.InspectionItem{
					item("/config 사용량 확인", "/config 파일시스템 사용량 확인\n(CLI - show files system)", "사용량: 1.8% (9MB/488MB)\n여유공간: 98%", 1),
					item("/var 사용량 확인", "/var 파일시스템 사용량 확인\n(CLI - show files system)", "사용량: 55.4% (53510MB/96633MB)\n여유공간: 44%", 2),
					item("/data 사용량 확인", "/data 파일시스템 사용량 확인\n(CLI - show files system)", "사용량: 23.7% (1629935MB/6879855MB)\n여유공간: 76%", 3),
				},
			},
		},
	}
}

func cmReport() *models.Report {
	return &models.Report{
		Id:        "cm-report-lsitc",
		Title:     "Trellix CMS 장비 점검 보고서",
		Inspector: "김진수 (인더포레스트)",
		Group:     "LSITC",
		Type:      "CM",
		CustomInfo: &models.CustomReportInfo{
			Customer: lsitcCustomer(),
			System: models.OneOrMany[models.SystemInfo]{{
				Product:   "Trellix CMS",
				Equipment: "LS-CM",
				Version:   "FEOS Version: 10.0.4.1005222",
				Customer:  "LS ITC",
				Usage:     "Central Management System",
			}},
			License: models.OneOrMany[models.LicenseInfo]{{
				Appliance: "CM4500",
				Serial:    "FZ2215QA8GB",
				Id:        "3CECEF8F389A",
				EndDate:   "2027-06-18",
				Features:  []string{"FIREEYE_APPLIANCE", "FIREEYE_SUPPORT", "CONTENT_UPDATES"},
			}},
			Summary: models.SummaryInfo{
				Result: "[점검 결과]\n- /var 디렉토리 가용 공간 33% (전월: 32%)\n- RX discards: 163, RX overruns: 1636",
				Note:   "[비고]\n※ /var 디렉토리 가용량 저하 지속 모니터링 필요",
			},
		},
		Sections: []models.Section{
			{
				Id:        uuid.NewString(),
				Title:     "하드웨어 상태 점검",
				SortOrder: 1,
				Items: []models.InspectionItem{
					item("하드웨어 상태 점검", "전원 공급 및 하드웨어 전원 상태 확인\n(CLI - show system hardware status power-supply)", "Overall power status: Good", 1),
					item("하드웨어 상태 점검", "시스템 쿨링팬 동작 상태 확인\n(CLI - show system hardware status fan)", "Overall fan health: healthySystem\n개별 FAN 상태:\n- Fan 1: 6700 RPM (Ok)\n- Fan 2: 6300 RPM (Ok)", 2),
					item("하드웨어 상태 점검", "시스템 내부 온도가 적정한지 확인\n(CLI - show system hardware status temperature)", "System Temperature: 30°C (범위: 0-80°C, 상태: Good)", 3),
				},
			},
			{
				Id:        uuid.NewString(),
				Title:     "네트워크 상태 점검",
				SortOrder: 2,
				Items: []models.InspectionItem{
					item("인터페이스 상태", "관리 인터페이스 링크 상태 확인\n(CLI - show interface ether1)", "ether1: Link up, 1000Mb/s full duplex", 1),
					item("인터페이스 상태", "인터페이스 오류 카운터 확인\n(CLI - show interface ether1 statistics)", "RX discards: 163\nRX overruns: 1636", 2),
				},
			},
		},
	}
}

func exReport() *models.Report {
	return &models.Report{
		Id:        "ex-report-lsitc",
		Title:     "Trellix EX 정기점검 2025년 12월 보고서",
		Inspector: "김진수 (인더포레스트)",
		Group:     "LSITC",
		Type:      "EX",
		CustomInfo: &models.CustomReportInfo{
			Customer: lsitcCustomer(),
			System: models.OneOrMany[models.SystemInfo]{{
				Product:   "Trellix EX",
				Equipment: "LS-EX1",
				Version:   "FEOS Version: 10.0.3.1006118",
				Customer:  "LS ITC",
				Usage:     "Email Security Protection System",
			}},
			License: models.OneOrMany[models.LicenseInfo]{{
				Appliance: "EX3500",
				Serial:    "FZ2103QA2KD",
				Id:        "B4969137F2C0",
				EndDate:   "2026-09-30",
				Features:  []string{"FIREEYE_APPLIANCE", "FIREEYE_SUPPORT", "CONTENT_UPDATES", "EMAIL_MPS"},
			}},
			Summary: models.SummaryInfo{
				Result: "[점검 결과]\n- 전체 하드웨어 및 서비스 상태 정상",
				Note:   "[비고]\n※ 특이사항 없음",
			},
		},
		Sections: []models.Section{
			{
				Id:        uuid.NewString(),
				Title:     "하드웨어 상태 점검",
				SortOrder: 1,
				Items: []models.InspectionItem{
					item("전원 상태", "전원 공급 장치 정상 여부 확인\n(CLI - show system hardware status power-supply)", "Overall power status: Good", 1),
					item("Disk 상태", "디스크 인식 여부 및 RAID 상태 확인\n(CLI - show system hardware status raid)", "Overall raid status: Good", 2),
				},
			},
			{
				Id:        uuid.NewString(),
				Title:     "서비스 상태 점검",
				SortOrder: 2,
				Items: []models.InspectionItem{
					item("MTA 서비스", "메일 처리 서비스 동작 상태 확인\n(CLI - show email status)", "Email analysis service: Online", 1),
					item("탐지 엔진", "탐지 엔진 및 시그니처 업데이트 확인", "Security Content Version: 918.455", 2),
				},
			},
		},
	}
}

func item(category, criteria, result string, sortOrder int) models.InspectionItem {
	return models.InspectionItem{
		Id:        uuid.NewString(),
		Category:  category,
		Criteria:  criteria,
		Result:    result,
		Opinion:   "특이사항 없음",
		SortOrder: sortOrder,
	}
}
