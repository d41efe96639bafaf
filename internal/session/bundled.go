package session

import (
	"time"

	"medprep/internal/domain"
)

// AssessmentQuestions returns the statically bundled five-question set used
// by the assessment quiz. No network fetch is involved; every call returns
// a fresh copy so sessions cannot share state.
func AssessmentQuestions() []*domain.Question {
	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	qs := []*domain.Question{
		{
			ID:       "ASSESS-01",
			ExamType: domain.ExamTypeStep1,
			Topic:    "Cardiology",
			Subtopic: "Ischemic Heart Disease",
			Question: "A 61-year-old man develops crushing substernal chest pain radiating to the left arm. Which coronary artery is most commonly occluded in inferior wall myocardial infarction?",
			Choices: []string{
				"Left anterior descending artery",
				"Right coronary artery",
				"Left circumflex artery",
				"Left main coronary artery",
			},
			Answer:      "Right coronary artery",
			Explanation: "The right coronary artery supplies the inferior wall of the left ventricle in right-dominant circulation, which is the most common pattern.",
			Source:      "First Aid for the USMLE Step 1, Cardiovascular",
			CreatedAt:   created,
		},
		{
			ID:       "ASSESS-02",
			ExamType: domain.ExamTypeStep1,
			Topic:    "Pulmonology",
			Subtopic: "Obstructive Lung Disease",
			Question: "A 24-year-old woman with episodic wheezing shows reversible airway obstruction on spirometry. Which cell type is the primary driver of her airway inflammation?",
			Choices: []string{
				"Neutrophils",
				"Eosinophils",
				"Macrophages",
				"Basophils",
			},
			Answer:      "Eosinophils",
			Explanation: "Allergic asthma is a type I hypersensitivity with eosinophil-predominant airway inflammation driven by Th2 cytokines.",
			Source:      "First Aid for the USMLE Step 1, Respiratory",
			CreatedAt:   created,
		},
		{
			ID:       "ASSESS-03",
			ExamType: domain.ExamTypeStep1,
			Topic:    "Renal",
			Subtopic: "Acid-Base Disorders",
			Question: "An anxious 19-year-old hyperventilates during an exam. Which acid-base disturbance is expected?",
			Choices: []string{
				"Respiratory acidosis",
				"Respiratory alkalosis",
				"Metabolic acidosis",
				"Metabolic alkalosis",
			},
			Answer:      "Respiratory alkalosis",
			Explanation: "Hyperventilation blows off CO2, raising pH and producing an acute respiratory alkalosis.",
			Source:      "First Aid for the USMLE Step 1, Renal",
			CreatedAt:   created,
		},
		{
			ID:       "ASSESS-04",
			ExamType: domain.ExamTypeStep1,
			Topic:    "Neurology",
			Subtopic: "Stroke",
			Question: "A 72-year-old woman suddenly cannot move her right arm and face, and her speech is non-fluent with intact comprehension. Which artery is most likely occluded?",
			Choices: []string{
				"Left middle cerebral artery",
				"Right middle cerebral artery",
				"Left posterior cerebral artery",
				"Basilar artery",
			},
			Answer:      "Left middle cerebral artery",
			Explanation: "Face-and-arm-predominant weakness with Broca aphasia localizes to the left MCA superior division.",
			Source:      "First Aid for the USMLE Step 1, Neurology",
			CreatedAt:   created,
		},
		{
			ID:       "ASSESS-05",
			ExamType: domain.ExamTypeStep1,
			Topic:    "Endocrinology",
			Subtopic: "Thyroid Disorders",
			Question: "A 34-year-old woman has weight loss, palpitations, and proptosis. Which antibody is most specific for her condition?",
			Choices: []string{
				"Anti-thyroid peroxidase antibody",
				"Thyroid-stimulating immunoglobulin",
				"Anti-thyroglobulin antibody",
				"Antinuclear antibody",
			},
			Answer:      "Thyroid-stimulating immunoglobulin",
			Explanation: "Graves disease is caused by thyroid-stimulating immunoglobulins binding the TSH receptor; proptosis is pathognomonic.",
			Source:      "First Aid for the USMLE Step 1, Endocrine",
			CreatedAt:   created,
		},
	}
	return qs
}

// DefaultVignette returns the single bundled clinical case presented by the
// case-study chat.
func DefaultVignette() CaseVignette {
	return CaseVignette{
		ID:    "CASE-CHF-01",
		Title: "Progressive dyspnea in an older man",
		Vignette: "A 68-year-old man presents with three weeks of progressive exertional dyspnea, " +
			"orthopnea, and bilateral ankle swelling. He has a history of hypertension and a " +
			"myocardial infarction four years ago. Examination shows jugular venous distension, " +
			"bibasilar crackles, and 2+ pitting edema to the knees. Blood pressure is 152/94 mmHg, " +
			"pulse 96/min, respirations 22/min, oxygen saturation 91% on room air.",
		Question: "Which of the following is the most appropriate initial pharmacotherapy?",
		Choices: []string{
			"Intravenous furosemide",
			"Oral metoprolol",
			"Intravenous normal saline",
			"Oral amlodipine",
		},
		CorrectIndex: 0,
		Explanation: "Acute decompensated heart failure with volume overload is treated first with " +
			"loop diuresis; beta blockade is deferred until euvolemia.",
	}
}
