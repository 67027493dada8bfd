package service

import "teacher-eval/backend/internal/dto"

// DefaultStandards the evaluation standards installed by `evalctl seed standards`, in display order
func DefaultStandards() []dto.StandardInput {
	return []dto.StandardInput{
		{
			Title:       "أداء الواجبات الوظيفية",
			Weight:      "10%",
			Icon:        "briefcase",
			Description: "الالتزام بالأنظمة والتعليمات والدوام الرسمي وأداء المهام المسندة.",
			SuggestedEvidence: []string{
				"سجل الحضور والانصراف",
				"تكليفات الإدارة المدرسية",
				"محاضر المناوبة والإشراف",
			},
		},
		{
			Title:       "التفاعل مع المجتمع المهني",
			Weight:      "10%",
			Icon:        "users",
			Description: "المشاركة في مجتمعات التعلم المهنية وتبادل الخبرات مع الزملاء.",
			SuggestedEvidence: []string{
				"شهادات حضور الدورات وورش العمل",
				"محاضر مجتمعات التعلم المهنية",
				"تبادل الزيارات الصفية",
			},
		},
		{
			Title:       "التفاعل مع أولياء الأمور",
			Weight:      "10%",
			Icon:        "home",
			Description: "التواصل الفعال مع أولياء الأمور وإشراكهم في تعلم أبنائهم.",
			SuggestedEvidence: []string{
				"سجل التواصل مع أولياء الأمور",
				"رسائل وإشعارات مرسلة",
				"محاضر اجتماعات الجمعية العمومية",
			},
		},
		{
			Title:       "التنويع في استراتيجيات التدريس",
			Weight:      "10%",
			Icon:        "layers",
			Description: "استخدام استراتيجيات تدريس متنوعة تراعي الفروق الفردية.",
			SuggestedEvidence: []string{
				"خطط دروس بتطبيق استراتيجيات متنوعة",
				"صور من تنفيذ الاستراتيجيات",
				"تقارير الزيارات الصفية",
			},
		},
		{
			Title:       "تحسين نتائج المتعلمين",
			Weight:      "10%",
			Icon:        "trending-up",
			Description: "رفع مستوى تحصيل المتعلمين ومعالجة الفاقد التعليمي.",
			SuggestedEvidence: []string{
				"خطط علاجية وإثرائية",
				"مقارنة نتائج الاختبارات القبلية والبعدية",
				"كشوف المتابعة",
			},
		},
		{
			Title:       "إعداد وتنفيذ خطة التعلم",
			Weight:      "10%",
			Icon:        "clipboard",
			Description: "إعداد خطة توزيع المنهج وتنفيذها وفق الجدول الزمني.",
			SuggestedEvidence: []string{
				"خطة توزيع المنهج",
				"سجل تحضير الدروس",
				"تقارير إنجاز الخطة",
			},
		},
		{
			Title:       "توظيف تقنيات ووسائل التعلم المناسبة",
			Weight:      "10%",
			Icon:        "monitor",
			Description: "توظيف التقنية والوسائل التعليمية في دعم عملية التعلم.",
			SuggestedEvidence: []string{
				"دروس مقدمة عبر المنصات التعليمية",
				"وسائل تعليمية من إعداد المعلم",
				"روابط محتوى رقمي",
			},
		},
		{
			Title:       "تهيئة البيئة التعليمية",
			Weight:      "5%",
			Icon:        "sun",
			Description: "توفير بيئة تعلم آمنة ومحفزة تراعي احتياجات المتعلمين.",
			SuggestedEvidence: []string{
				"صور للبيئة الصفية",
				"لوحات التعزيز والتحفيز",
			},
		},
		{
			Title:       "الإدارة الصفية",
			Weight:      "5%",
			Icon:        "grid",
			Description: "ضبط الصف وإدارة الوقت وتعزيز السلوك الإيجابي.",
			SuggestedEvidence: []string{
				"قواعد السلوك الصفي",
				"سجل متابعة السلوك",
			},
		},
		{
			Title:       "تحليل نتائج المتعلمين وتشخيص مستوياتهم",
			Weight:      "10%",
			Icon:        "bar-chart",
			Description: "تحليل نتائج التقويم وتشخيص مستويات المتعلمين لبناء الخطط.",
			SuggestedEvidence: []string{
				"تحليل نتائج الاختبارات",
				"تصنيف المتعلمين حسب المستويات",
				"رسوم بيانية للنتائج",
			},
		},
		{
			Title:       "تنوع أساليب التقويم",
			Weight:      "10%",
			Icon:        "check-square",
			Description: "استخدام أساليب تقويم متنوعة ومستمرة لقياس التعلم.",
			SuggestedEvidence: []string{
				"نماذج اختبارات قصيرة",
				"ملفات إنجاز المتعلمين",
				"سلالم التقدير وأدوات التقويم",
			},
		},
	}
}
