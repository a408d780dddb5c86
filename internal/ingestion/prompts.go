package ingestion

const syllabusPrompt = `You convert university syllabus documents into JSON.
Return one JSON object and nothing else, with this shape:
{"name": string, "subject": string, "description": string,
 "modules": [{"number": string, "name": string, "description": string, "hours": integer,
   "topics": [{"number": string, "name": string, "description": string,
     "subtopics": [{"number": string, "name": string, "description": string}]}]}]}
Keep module, topic and subtopic numbers exactly as written in the document.`

const pyqPrompt = `You convert past exam papers into JSON.
Return one JSON object and nothing else, with this shape:
{"title": string, "subject": string, "year": string, "exam_type": string, "description": string,
 "questions": [{"text": string, "answer": string, "question_type": string, "marks": integer}]}
Copy every question completely, including all sub-parts and instructions.
Use "mcq", "fib", "short" or "long" for question_type.`
