package predict

import "math/rand"

// SampleCase is a canned case text for the dashboard's "try an example"
// button.
type SampleCase struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

var sampleCases = []SampleCase{
	{
		Title: "Acute myocardial infarction",
		Text: "65 year old male admitted with sudden onset chest pain for 3 hours. " +
			"Crushing substernal pain radiating to the left shoulder and arm, with diaphoresis and nausea. " +
			"History of hypertension for 10 years. BP 140/90 mmHg, HR 90 regular, muffled heart sounds, lungs clear. " +
			"ECG shows ST elevation in leads V1-V4. Troponin I elevated. Diagnosed with acute anterior myocardial infarction.",
	},
	{
		Title: "Heart failure",
		Text: "72 year old female admitted with exertional dyspnea and bilateral leg edema for 1 month. " +
			"History of coronary artery disease and hypertension for 20 years. BP 150/95 mmHg, HR 100 with atrial fibrillation, " +
			"bibasilar crackles, cardiomegaly, gallop rhythm, moderate pitting edema of both legs. " +
			"Chest x-ray shows enlarged cardiac silhouette with pulmonary congestion. Echocardiogram shows dilated left ventricle, ejection fraction 35%. " +
			"Diagnosed with chronic heart failure.",
	},
	{
		Title: "Pneumonia",
		Text: "45 year old male admitted with fever, cough and sputum production for 5 days. " +
			"Fever up to 39C with productive cough of purulent sputum, no chest pain or hemoptysis. " +
			"T 38.5C, P 95, R 22, BP 120/80 mmHg, crackles over the right lower lobe. " +
			"WBC 12.5, neutrophils 85%. Chest CT shows right lower lobe consolidation. Diagnosed with community-acquired pneumonia.",
	},
	{
		Title: "Diabetes mellitus",
		Text: "58 year old female presenting with polydipsia, polyuria, polyphagia and weight loss for 2 months. " +
			"No significant past history. BP 130/80 mmHg, HR 80, no peripheral edema. " +
			"Random glucose 15.6 mmol/L, HbA1c 9.2%. Diagnosed with type 2 diabetes mellitus.",
	},
	{
		Title: "Chronic obstructive pulmonary disease",
		Text: "68 year old male, 40 pack-year smoker, with cough, sputum and exertional dyspnea for 10 years, worse for 1 week. " +
			"Chronic cough with white sputum, marked dyspnea on exertion. Barrel chest, diminished breath sounds with scattered wheezes. " +
			"Spirometry: FEV1/FVC 60%, FEV1 55% predicted. Diagnosed with acute exacerbation of COPD.",
	},
}

// SampleCases returns the canned corpus plus a recommended pick.
func SampleCases() (cases []SampleCase, recommended SampleCase) {
	return sampleCases, sampleCases[rand.Intn(len(sampleCases))]
}
