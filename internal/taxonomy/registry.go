// Package taxonomy holds the fixed two-level topic table that classifies
// every exam question. Lookups are pure and total: an unknown topic yields
// false or an empty list, never an error.
package taxonomy

var topicOrder = []string{
	"Cardiology",
	"Pulmonology",
	"Gastroenterology",
	"Renal",
	"Endocrinology",
	"Neurology",
	"Psychiatry",
	"Hematology",
	"Infectious Disease",
	"Musculoskeletal",
	"Reproductive Health",
	"Dermatology",
}

var subtopics = map[string][]string{
	"Cardiology":          {"Arrhythmias", "Heart Failure", "Ischemic Heart Disease", "Valvular Disease", "Congenital Heart Disease"},
	"Pulmonology":         {"Obstructive Lung Disease", "Restrictive Lung Disease", "Pulmonary Vascular Disease", "Pleural Disease"},
	"Gastroenterology":    {"Esophageal Disorders", "Peptic Ulcer Disease", "Inflammatory Bowel Disease", "Hepatobiliary Disease", "Pancreatitis"},
	"Renal":               {"Acid-Base Disorders", "Glomerular Disease", "Acute Kidney Injury", "Electrolyte Disorders"},
	"Endocrinology":       {"Diabetes Mellitus", "Thyroid Disorders", "Adrenal Disorders", "Pituitary Disorders"},
	"Neurology":           {"Stroke", "Seizure Disorders", "Demyelinating Disease", "Neuromuscular Disorders", "Movement Disorders"},
	"Psychiatry":          {"Mood Disorders", "Psychotic Disorders", "Anxiety Disorders", "Substance Use Disorders"},
	"Hematology":          {"Anemias", "Coagulation Disorders", "Hematologic Malignancy", "Transfusion Medicine"},
	"Infectious Disease":  {"Bacterial Infections", "Viral Infections", "Fungal Infections", "Antimicrobials"},
	"Musculoskeletal":     {"Arthritis", "Bone Disorders", "Connective Tissue Disease", "Sports Injuries"},
	"Reproductive Health": {"Obstetrics", "Gynecology", "Sexually Transmitted Infections"},
	"Dermatology":         {"Inflammatory Dermatoses", "Skin Malignancy", "Infectious Dermatoses"},
}

// IsValidTopic reports whether topic exists in the registry.
func IsValidTopic(topic string) bool {
	_, ok := subtopics[topic]
	return ok
}

// IsValidSubtopic reports whether subtopic exists under topic. It is false
// when the topic itself is invalid.
func IsValidSubtopic(topic, subtopic string) bool {
	for _, s := range subtopics[topic] {
		if s == subtopic {
			return true
		}
	}
	return false
}

// Subtopics returns the ordered subtopics of topic, empty when the topic is
// unknown. The returned slice is a copy.
func Subtopics(topic string) []string {
	src := subtopics[topic]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// TopicNames returns all topic names in registry order.
func TopicNames() []string {
	out := make([]string, len(topicOrder))
	copy(out, topicOrder)
	return out
}
